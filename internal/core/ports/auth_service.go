package ports

import "context"

// TokenOwner is the identity projection returned alongside a token pair.
type TokenOwner struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginResult carries a freshly issued token pair. It is transient and never
// persisted; tokens are stateless and independently verifiable.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "Bearer"
	Owner        TokenOwner
}

// AuthService defines the credential and token use cases.
type AuthService interface {
	// Authenticate validates email+password and issues an access/refresh
	// token pair. Read-only against the user store.
	Authenticate(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh validates a refresh token and mints a new access token without
	// re-checking the password or re-reading the store.
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
}
