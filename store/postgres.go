package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS order_entries (
		entry_key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Postgres keeps entries in a Postgres table through a pgx pool
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse DATABASE_URL")
	}
	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	p := &Postgres{pool: pool}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return errors.Wrap(err, "create order_entries")
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM order_entries WHERE entry_key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", key)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO order_entries (entry_key, value, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (entry_key) DO UPDATE SET
			value = $2,
			updated_at = now()`,
		key, value,
	)
	return errors.Wrapf(err, "set %s", key)
}

func (p *Postgres) Create(ctx context.Context, key string, value []byte) error {
	tag, err := p.pool.Exec(ctx, `
		INSERT INTO order_entries (entry_key, value, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (entry_key) DO NOTHING`,
		key, value,
	)
	if err != nil {
		return errors.Wrapf(err, "create %s", key)
	}
	if tag.RowsAffected() == 0 {
		return ErrExists
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM order_entries WHERE entry_key = $1`, key)
	if err != nil {
		return errors.Wrapf(err, "delete %s", key)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT entry_key FROM order_entries WHERE starts_with(entry_key, $1) ORDER BY entry_key`, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return keys, errors.Wrap(err, "scan keys")
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
