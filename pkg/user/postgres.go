package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/social/pkg/db"
)

const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool used by Postgres.
type DB interface {
	db.TxBeginner
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres stores accounts in the users, customers and social_links tables.
type Postgres struct {
	db DB
}

func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (User, error) {
	return p.scanUser(p.db.QueryRow(ctx,
		`SELECT id::text, email, created_at FROM users WHERE email = $1`, NormalizeEmail(email)))
}

func (p *Postgres) UserByID(ctx context.Context, id string) (User, error) {
	return p.scanUser(p.db.QueryRow(ctx,
		`SELECT id::text, email, created_at FROM users WHERE id::text = $1`, id))
}

func (p *Postgres) CreateUser(ctx context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return User{}, ErrInvalid
	}

	u, err := p.scanUser(p.db.QueryRow(ctx,
		`INSERT INTO users (id, email) VALUES (gen_random_uuid(), $1)
		 RETURNING id::text, email, created_at`, email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (p *Postgres) CustomerByUserID(ctx context.Context, userID string) (Customer, error) {
	var c Customer
	err := p.db.QueryRow(ctx,
		`SELECT user_id::text, last_name, first_name, avatar_url, verified, created_at, updated_at
		 FROM customers WHERE user_id::text = $1`, userID).
		Scan(&c.UserID, &c.LastName, &c.FirstName, &c.AvatarURL, &c.Verified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Customer{}, wrap(err)
	}
	return c, nil
}

func (p *Postgres) CreateCustomer(ctx context.Context, c Customer) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO customers (user_id, last_name, first_name, avatar_url, verified)
		 VALUES ($1::uuid, $2, $3, $4, $5)`,
		c.UserID, c.LastName, c.FirstName, c.AvatarURL, c.Verified)
	return wrap(err)
}

func (p *Postgres) UpdateCustomer(ctx context.Context, c Customer) error {
	tag, err := p.db.Exec(ctx,
		`UPDATE customers SET last_name = $2, first_name = $3, avatar_url = $4, verified = $5, updated_at = now()
		 WHERE user_id::text = $1`,
		c.UserID, c.LastName, c.FirstName, c.AvatarURL, c.Verified)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) FindLinked(ctx context.Context, key, providerID string) (User, error) {
	return p.scanUser(p.db.QueryRow(ctx,
		`SELECT u.id::text, u.email, u.created_at
		 FROM social_links l JOIN users u ON u.id = l.user_id
		 WHERE l.link_key = $1 AND l.provider_id = $2
		 ORDER BY l.created_at DESC LIMIT 1`, key, providerID))
}

func (p *Postgres) ReplaceLink(ctx context.Context, key, providerID, userID string) error {
	return db.WithTx(ctx, p.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM social_links WHERE link_key = $1 AND provider_id = $2`, key, providerID); err != nil {
			return wrap(err)
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO social_links (link_key, provider_id, user_id) VALUES ($1, $2, $3::uuid)`,
			key, providerID, userID)
		return wrap(err)
	})
}

func (p *Postgres) DeleteOrphanLinks(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx,
		`DELETE FROM social_links l WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = l.user_id)`)
	if err != nil {
		return 0, wrap(err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		return User{}, wrap(err)
	}
	return u, nil
}

func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	default:
		return errors.Join(ErrStore, err)
	}
}

var _ Store = (*Postgres)(nil)
