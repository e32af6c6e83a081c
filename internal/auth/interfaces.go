package auth

// TokenService defines the interface for session token operations.
type TokenService interface {
	GenerateToken(role Role, cardID int64) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var _ TokenService = (*JWTService)(nil)
