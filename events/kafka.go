package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// ParseBrokers splits a comma separated broker list, dropping blanks
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// messageWriter is the part of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes order events keyed by phone so one customer's events stay ordered
type Kafka struct {
	writer messageWriter
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (k *Kafka) Publish(ctx context.Context, evt OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "encode order event")
	}
	msg := kafka.Message{Key: []byte(evt.Phone), Value: data, Time: time.Now().UTC()}
	return errors.Wrapf(k.writer.WriteMessages(ctx, msg), "publish %s", evt.Type)
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
