package ports

import (
	"context"

	"github.com/quickblog/blog-api/internal/core/domain"
)

// RegisterUserInput carries the data needed to create an account.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserService defines account use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
