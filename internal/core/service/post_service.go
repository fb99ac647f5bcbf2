package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickblog/blog-api/internal/core/domain"
	"github.com/quickblog/blog-api/internal/core/ports"
)

// PostService implements post CRUD with an optional read-through cache in
// front of single-post lookups.
type PostService struct {
	posts  ports.PostRepository
	cache  ports.PostCache // may be nil
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, cache ports.PostCache, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, cache: cache, logger: logger}
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	if s.cache != nil {
		if post, ok := s.cache.Get(ctx, id); ok {
			return post, nil
		}
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, fmt.Errorf("post with id %d: %w", id, domain.ErrPostNotFound)
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, post)
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, ownerID int64, input ports.PostInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:     strings.TrimSpace(input.Title),
		Content:   strings.TrimSpace(input.Content),
		Published: input.Published,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	s.logger.Info().Int64("post_id", created.ID).Int64("owner_id", ownerID).Msg("post created")
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id int64, input ports.PostInput) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, fmt.Errorf("post with id %d: %w", id, domain.ErrPostNotFound)
		}
		return nil, err
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Content = strings.TrimSpace(input.Content)
	post.Published = input.Published

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return fmt.Errorf("post with id %d: %w", id, domain.ErrPostNotFound)
		}
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}
