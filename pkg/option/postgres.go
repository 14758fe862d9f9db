package option

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by Postgres.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres keeps options in the "options" table.
type Postgres struct {
	db DB
}

func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := p.db.QueryRow(ctx, `SELECT value FROM options WHERE key = $1`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", errors.Join(ErrStore, err)
	}
	return v, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO options (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Add inserts value when key is absent and reads back whatever is stored. The read
// runs as its own statement so it sees a row committed by a concurrent insert.
func (p *Postgres) Add(ctx context.Context, key, value string) (string, error) {
	if _, err := p.db.Exec(ctx,
		`INSERT INTO options (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
		key, value); err != nil {
		return "", errors.Join(ErrStore, err)
	}
	return p.Get(ctx, key)
}

var (
	_ Store = (*Postgres)(nil)
	_ Adder = (*Postgres)(nil)
)
