package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sifan077/linkstore/internal/app/model"
	"github.com/sifan077/linkstore/internal/app/repository"
	"go.uber.org/zap"
)

// ErrInvalidURL is returned by Shorten when the URL fails validation.
var ErrInvalidURL = errors.New("invalid or missing url")

// LinkService defines behaviour-level operations on links.
type LinkService interface {
	Shorten(ctx context.Context, rawURL string) (*model.Link, error)
	Lookup(ctx context.Context, shortID int64) (*model.Link, error)
}

// LinkServiceDeps groups the collaborators of the link service.
type LinkServiceDeps struct {
	Logger    *zap.Logger
	Links     repository.LinkRepository
	Publisher LinkEventPublisher
}

type linkService struct {
	logger    *zap.Logger
	repo      repository.LinkRepository
	publisher LinkEventPublisher
}

// NewLinkService returns a service backed by deps.Links. Publisher may be nil.
func NewLinkService(deps LinkServiceDeps) LinkService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &linkService{
		logger:    logger,
		repo:      deps.Links,
		publisher: deps.Publisher,
	}
}

func (s *linkService) Shorten(ctx context.Context, rawURL string) (*model.Link, error) {
	if !IsValidURL(rawURL) {
		return nil, ErrInvalidURL
	}

	link := &model.Link{FullURL: rawURL}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCreated(link); err != nil {
			s.logger.Warn("failed to publish link event",
				zap.Int64("short_id", link.ShortID),
				zap.Error(err))
		}
	}

	return link, nil
}

func (s *linkService) Lookup(ctx context.Context, shortID int64) (*model.Link, error) {
	link, err := s.repo.GetByID(ctx, shortID)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}
