package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/notes/internal/core/domain"
)

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error) // returns access_token, user, error
	VerifyToken(token string) (*TokenClaims, error)
}
