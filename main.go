package main

import (
	"os"

	"southern-spoon-api/config"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "southern-spoon-api",
		Usage: "Southern Spoon meal ordering service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create the order store schema and exit",
				Action: migrate,
			},
			{
				Name:  "lookup",
				Usage: "print the order stored for a phone number",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "customer phone number", Required: true},
				},
				Action: lookup,
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("❌ southern-spoon-api failed")
	}
}

// setup loads configuration and applies the logging settings
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := configureLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configureLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
