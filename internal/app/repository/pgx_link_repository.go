package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sifan077/linkstore/internal/app/model"
)

const (
	insertLinkSQL = `INSERT INTO links (full_url) VALUES ($1) RETURNING short_id`
	selectLinkSQL = `SELECT short_id, full_url FROM links WHERE short_id = $1`
)

type pgxLinkRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLinkRepository returns a LinkRepository that talks to Postgres through a pgx pool.
// The links table is expected to exist already (see postgres.AutoMigrate).
func NewPgxLinkRepository(pool *pgxpool.Pool) LinkRepository {
	return &pgxLinkRepository{pool: pool}
}

func (r *pgxLinkRepository) Create(ctx context.Context, link *model.Link) error {
	var id int64
	if err := r.pool.QueryRow(ctx, insertLinkSQL, link.FullURL).Scan(&id); err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	link.ShortID = id
	return nil
}

func (r *pgxLinkRepository) GetByID(ctx context.Context, shortID int64) (*model.Link, error) {
	var link model.Link
	err := r.pool.QueryRow(ctx, selectLinkSQL, shortID).Scan(&link.ShortID, &link.FullURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("select link %d: %w", shortID, err)
	}
	return &link, nil
}
