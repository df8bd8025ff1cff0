package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sifan077/linkstore/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrLinkNotFound signals that the requested short link does not exist.
	ErrLinkNotFound = errors.New("link not found")
)

// LinkRepository defines the data access contract for short links.
//
// Create assigns link.ShortID. Ids are unique and strictly increasing for the
// lifetime of the backing store; they are never reused.
type LinkRepository interface {
	Create(ctx context.Context, link *model.Link) error
	GetByID(ctx context.Context, shortID int64) (*model.Link, error)
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository returns a GORM-backed LinkRepository.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *model.Link) error {
	// Let the engine pick the id.
	link.ShortID = 0
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

func (r *linkRepository) GetByID(ctx context.Context, shortID int64) (*model.Link, error) {
	var link model.Link
	if err := r.db.WithContext(ctx).Where("short_id = ?", shortID).Take(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("select link %d: %w", shortID, err)
	}
	return &link, nil
}
