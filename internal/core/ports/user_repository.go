package ports

import (
	"context"

	"github.com/quickblog/blog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Emails are stored lowercased; lookups expect the caller to normalize.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
