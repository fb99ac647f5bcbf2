package ports

import (
	"context"

	"github.com/quickblog/blog-api/internal/core/domain"
)

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title     string
	Content   string
	Published bool
}

// PostService defines the post CRUD use cases.
type PostService interface {
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, ownerID int64, input PostInput) (*domain.Post, error)
	Update(ctx context.Context, id int64, input PostInput) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

// PostCache is an optional read-through cache in front of the post store.
// Implementations must degrade to a miss on any backend failure.
type PostCache interface {
	Get(ctx context.Context, id int64) (*domain.Post, bool)
	Set(ctx context.Context, post *domain.Post)
	Invalidate(ctx context.Context, id int64)
}
