package config

import (
	"fmt"
	"time"

	"southern-spoon-api/models"
	"southern-spoon-api/pricing"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config is read from the environment, optionally seeded from a .env file
type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"` // sqlite | postgres | memory
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"southern_spoon.db"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// JWTSecret used to sign session and admin tokens
	JWTSecret         string `envconfig:"JWT_SECRET" default:"southern_spoon_dev_secret"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	Timezone         string        `envconfig:"TIMEZONE" default:"Local"`
	MenuFile         string        `envconfig:"MENU_FILE"`
	Surcharge        int64         `envconfig:"SURCHARGE" default:"50"`
	TaxRate          string        `envconfig:"TAX_RATE" default:"0.05"`
	LunchCutoffHour  int           `envconfig:"LUNCH_CUTOFF_HOUR" default:"12"`
	DinnerCutoffHour int           `envconfig:"DINNER_CUTOFF_HOUR" default:"19"`
	ConfirmationTTL  time.Duration `envconfig:"CONFIRMATION_TTL" default:"5s"`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"2h"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"southern-spoon.orders"`

	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string   `envconfig:"LOG_FORMAT" default:"text"` // text | json
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// Location resolves TIMEZONE; surcharge cutoffs are evaluated in this zone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) PricingRules() (pricing.Rules, error) {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return pricing.Rules{}, fmt.Errorf("TAX_RATE %q: %w", c.TaxRate, err)
	}
	if rate.IsNegative() {
		return pricing.Rules{}, fmt.Errorf("TAX_RATE %q: must not be negative", c.TaxRate)
	}
	if c.Surcharge < 0 {
		return pricing.Rules{}, fmt.Errorf("SURCHARGE %d: must not be negative", c.Surcharge)
	}
	for name, h := range map[string]int{"LUNCH_CUTOFF_HOUR": c.LunchCutoffHour, "DINNER_CUTOFF_HOUR": c.DinnerCutoffHour} {
		if h < 0 || h > 24 {
			return pricing.Rules{}, fmt.Errorf("%s %d: must be between 0 and 24", name, h)
		}
	}
	return pricing.Rules{
		Surcharge: c.Surcharge,
		TaxRate:   rate,
		Cutoffs: map[models.MealSlot]int{
			models.MealLunch:  c.LunchCutoffHour,
			models.MealDinner: c.DinnerCutoffHour,
		},
	}, nil
}
