package driven

import "github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"

// AuthAdapter handles session token cryptographic operations.
// This does NOT handle storage - use SessionStore for session persistence.
type AuthAdapter interface {
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
