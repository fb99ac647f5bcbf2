package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickblog/blog-api/internal/auth"
	"github.com/quickblog/blog-api/internal/core/domain"
	"github.com/quickblog/blog-api/internal/core/ports"
)

const bearerTokenType = "Bearer"

// AuthService implements login and token refresh. It holds no mutable state;
// every operation is a pure function of its inputs plus a read of the user
// store and the static signing secret.
type AuthService struct {
	users      ports.UserRepository
	codec      *auth.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	audit      ports.AuthAudit // optional
	logger     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codec *auth.Codec,
	accessTTL, refreshTTL time.Duration,
	audit ports.AuthAudit,
	logger zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		audit:      audit,
		logger:     logger,
	}
}

// Authenticate validates credentials and issues an access/refresh token
// pair. Unknown email and wrong password produce the same error so callers
// cannot probe which addresses are registered.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(email, ports.AuthEventLoginFailed, "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, domain.ErrUnknownHash) {
			s.logger.Error().
				Int64("user_id", user.ID).
				Msg("stored password hash is not a parseable bcrypt digest")
			s.record(email, ports.AuthEventLoginFailed, "unrecognized hash")
			return nil, domain.ErrUnknownHash
		}
		s.record(email, ports.AuthEventLoginFailed, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issuePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.record(email, ports.AuthEventLoginOK, "")
	s.logger.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return result, nil
}

// Refresh decodes a refresh token and mints a new access token from the
// user snapshot embedded at login time. The store is deliberately not
// re-read, so identity changes since login are not reflected until the
// refresh token itself expires. The refresh token is returned unchanged;
// tokens are not rotated on use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.LoginResult, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.Refresh {
		return nil, fmt.Errorf("%w: expected a refresh token", domain.ErrInvalidToken)
	}

	accessToken, err := s.codec.Issue(claims.User, s.accessTTL, false)
	if err != nil {
		return nil, err
	}

	s.record(claims.User.Email, ports.AuthEventRefresh, "")
	s.logger.Info().Int64("user_id", claims.User.ID).Msg("access token refreshed")

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    bearerTokenType,
		Owner:        ports.TokenOwner{ID: claims.User.ID, Email: claims.User.Email},
	}, nil
}

func (s *AuthService) issuePair(id int64, email string) (*ports.LoginResult, error) {
	tokenUser := auth.TokenUser{ID: id, Email: email}

	accessToken, err := s.codec.Issue(tokenUser, s.accessTTL, false)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Issue(tokenUser, s.refreshTTL, true)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    bearerTokenType,
		Owner:        ports.TokenOwner{ID: id, Email: email},
	}, nil
}

func (s *AuthService) record(email string, kind ports.AuthEventKind, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Email:     email,
		Kind:      kind,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
