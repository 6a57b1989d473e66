package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"southern-spoon-api/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// KeyPrefix namespaces order entries inside the KV backend
const KeyPrefix = "order_"

// Key returns the store key for a phone number
func Key(phone string) string {
	return KeyPrefix + phone
}

// Orders reads and writes OrderRecords keyed by phone number
type Orders struct {
	kv  KV
	log logrus.FieldLogger
}

func NewOrders(kv KV, log logrus.FieldLogger) *Orders {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orders{kv: kv, log: log}
}

// Find returns the record stored for phone, or ErrNotFound.
// An entry that cannot be decoded is treated as absent so a new order can replace it.
func (o *Orders) Find(ctx context.Context, phone string) (*models.OrderRecord, error) {
	raw, err := o.kv.Get(ctx, Key(phone))
	if err != nil {
		return nil, err
	}
	var rec models.OrderRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		o.log.WithError(err).WithField("phone", phone).Warn("discarding unreadable order entry")
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Save writes rec under its phone key, replacing any previous record
func (o *Orders) Save(ctx context.Context, rec *models.OrderRecord) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	return o.kv.Set(ctx, Key(rec.Phone), raw)
}

// Create writes rec only if its phone has no entry yet, otherwise ErrExists.
// The check and the write are one backend operation.
func (o *Orders) Create(ctx context.Context, rec *models.OrderRecord) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	return o.kv.Create(ctx, Key(rec.Phone), raw)
}

func encode(rec *models.OrderRecord) ([]byte, error) {
	if rec.Phone == "" {
		return nil, errors.New("store: order has no phone")
	}
	raw, err := json.Marshal(rec)
	return raw, errors.Wrap(err, "encode order")
}

func (o *Orders) Delete(ctx context.Context, phone string) error {
	return o.kv.Delete(ctx, Key(phone))
}

// List returns every readable record, most recently placed first
func (o *Orders) List(ctx context.Context) ([]models.OrderRecord, error) {
	keys, err := o.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]models.OrderRecord, 0, len(keys))
	for _, k := range keys {
		rec, err := o.Find(ctx, strings.TrimPrefix(k, KeyPrefix))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
