package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"southern-spoon-api/config"
	"southern-spoon-api/store"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// migrate opens the configured store, which creates its schema
func migrate(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	kv, err := config.OpenStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()
	log.WithField("driver", cfg.StoreDriver).Info("✅ order store schema is up to date")
	return nil
}

func lookup(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	kv, err := config.OpenStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	phone := c.String("phone")
	rec, err := store.NewOrders(kv, log.StandardLogger()).Find(c.Context, phone)
	if errors.Is(err, store.ErrNotFound) {
		return cli.Exit(fmt.Sprintf("no order stored for %s", phone), 1)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
