package utils

import (
	"errors" // Sentinel errors
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for every token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// JWT Claims
type Claims struct {
	UserID               uint   `json:"id"`    // User ID
	Email                string `json:"email"` // User email
	Role                 string `json:"role"`  // User role
	jwt.RegisteredClaims        // Standard JWT claims
}

// TokenManager issues and verifies HS256 bearer tokens
type TokenManager struct {
	secret []byte        // Signing key
	ttl    time.Duration // Lifetime of issued tokens
}

// NewTokenManager creates a TokenManager for the given secret and lifetime
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token carrying the user's id, email and role
func (m *TokenManager) Issue(userID uint, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		Email:  email,  // Custom claim for email
		Role:   role,   // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(m.secret)                        // Sign the token with the secret
}

// Parse validates a token string and returns its claims.
// Bad signatures, other algorithms, missing or past expiry and malformed input all yield ErrInvalidToken.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return m.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	// Check for parsing errors
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	return nil, ErrInvalidToken
}
