package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"southern-spoon-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "STORE_DRIVER", "CORS_ORIGINS", "CONFIRMATION_TTL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.ConfirmationTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SURCHARGE", "40")
	t.Setenv("CONFIRMATION_TTL", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, int64(40), cfg.Surcharge)
	assert.Equal(t, 2*time.Second, cfg.ConfirmationTTL)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("SURCHARGE", "fifty")
	_, err := Load()
	assert.Error(t, err)
}

func TestPricingRules(t *testing.T) {
	cfg := &Config{Surcharge: 50, TaxRate: "0.05", LunchCutoffHour: 12, DinnerCutoffHour: 19}
	rules, err := cfg.PricingRules()
	require.NoError(t, err)
	assert.Equal(t, int64(11), rules.Tax(210))
	assert.Equal(t, 19, rules.Cutoffs[models.MealDinner])

	cfg.TaxRate = "five percent"
	_, err = cfg.PricingRules()
	assert.Error(t, err)

	cfg.TaxRate = "0.05"
	cfg.LunchCutoffHour = 25
	_, err = cfg.PricingRules()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestLoadMenu(t *testing.T) {
	menu, err := LoadMenu("")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMenu(), menu)

	dir := t.TempDir()
	good := filepath.Join(dir, "menu.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
items:
  - id: curd-rice
    name: Curd Rice (300g)
    price: 70
  - id: fry
    name: Aloo Fry (250g)
    price: 60
`), 0o644))
	menu, err = LoadMenu(good)
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{
		{ID: "curd-rice", Name: "Curd Rice (300g)", Price: 70},
		{ID: "fry", Name: "Aloo Fry (250g)", Price: 60},
	}, menu)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("items:\n  - {id: a, name: A, price: 1}\n  - {id: a, name: B, price: 2}\n"), 0o644))
	_, err = LoadMenu(dup)
	assert.ErrorContains(t, err, "duplicate")

	_, err = LoadMenu(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	kv, err := OpenStore(ctx, &Config{StoreDriver: "memory"})
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	kv, err = OpenStore(ctx, &Config{StoreDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "o.db")})
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	_, err = OpenStore(ctx, &Config{StoreDriver: "postgres"})
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = OpenStore(ctx, &Config{StoreDriver: "redis"})
	assert.Error(t, err)
}
