package store

import (
	"context"
	"strings"

	"southern-spoon-api/models"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Gorm keeps entries in the order_entries table of a gorm database
type Gorm struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a sqlite database file and migrates it
func OpenSQLite(path string) (*Gorm, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	g := NewGorm(db)
	if err := g.Migrate(); err != nil {
		return nil, err
	}
	return g, nil
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates the order_entries table
func (g *Gorm) Migrate() error {
	return errors.Wrap(g.db.AutoMigrate(&models.OrderEntry{}), "migrate order_entries")
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.OrderEntry
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", key)
	}
	return []byte(entry.Value), nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	entry := models.OrderEntry{Key: key, Value: string(value)}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	return errors.Wrapf(err, "set %s", key)
}

func (g *Gorm) Create(ctx context.Context, key string, value []byte) error {
	entry := models.OrderEntry{Key: key, Value: string(value)}
	res := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoNothing: true,
	}).Create(&entry)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "create %s", key)
	}
	if res.RowsAffected == 0 {
		return ErrExists
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	res := g.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&models.OrderEntry{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete %s", key)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := g.db.WithContext(ctx).Model(&models.OrderEntry{}).
		Where("entry_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("entry_key").
		Pluck("entry_key", &keys).Error
	return keys, errors.Wrap(err, "list keys")
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
