// Package identity verifies tokens minted by the external identity provider
package identity

import (
	"errors"
	"strings"
	"time"

	perr "aidetector/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

// Identity is who a verified token speaks for
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	TokenID       string    // jti, may be empty
	ExpiresAt     time.Time // zero when the token carries no exp
}

// Claims are the provider's token claims
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Config configures a Verifier
type Config struct {
	Secret   string
	Issuer   string // optional
	Audience string // optional
	Leeway   time.Duration
}

// Verifier checks HS256 tokens against a shared secret
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier builds a Verifier; an empty secret is an error
func NewVerifier(c Config) (*Verifier, error) {
	if strings.TrimSpace(c.Secret) == "" {
		return nil, errors.New("identity: secret must be set")
	}
	if c.Leeway <= 0 {
		c.Leeway = defaultLeeway
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(c.Leeway),
		jwt.WithExpirationRequired(),
	}
	if c.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.Issuer))
	}
	if c.Audience != "" {
		opts = append(opts, jwt.WithAudience(c.Audience))
	}
	return &Verifier{secret: []byte(c.Secret), parser: jwt.NewParser(opts...)}, nil
}

// Verify parses and validates token; every failure is unauthorized
func (v *Verifier) Verify(token string) (Identity, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "Unauthorized")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, perr.Unauthorizedf("Unauthorized")
	}

	id := Identity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		TokenID:       claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Issue signs c; the scan CLI and tests use it to mint tokens
// with the same secret the server verifies against
func Issue(secret string, c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
