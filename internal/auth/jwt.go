package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// Token verification failures. All three map to 401 at the HTTP boundary,
// but they're distinct errors so tests (and logs) can tell a stale token
// from a forged one.
var (
	ErrTokenExpired    = errors.New("auth: token expired")
	ErrInvalidToken    = errors.New("auth: invalid token")
	ErrMalformedClaims = errors.New("auth: malformed claims")
)

const issuer = "notes-api"

// Identity is the resolved caller extracted from a verified token.
type Identity struct {
	ID       int64
	Username string
}

// TokenService issues and verifies signed bearer tokens.
//
// Tokens are stateless: everything needed to authenticate a request (the
// subject username, the user id, the expiry) lives inside the signed token,
// so verification needs no database lookup — just the shared secret. There
// is no server-side revocation list; a token stays valid until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// ttl is the lifetime of issued tokens. The secret should be at least
// 32 bytes of randomness in production (openssl rand -hex 32).
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the token payload: the registered claim set plus the numeric
// user id. "sub" carries the username, matching what clients see in their
// profile; "uid" is what ownership checks key on.
type claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Issue creates a signed HS256 token for the given user, expiring
// ttl from now.
func (s *TokenService) Issue(username string, userID int64) (string, error) {
	return s.IssueWithTTL(username, userID, s.ttl)
}

// IssueWithTTL creates a token with an explicit lifetime. Used by tests to
// mint already-expired tokens; production callers go through Issue.
func (s *TokenService) IssueWithTTL(username string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string and returns the identity it
// encodes. It fails closed: any decode, signature, expiry, or claims problem
// yields an error, never a partial identity.
//
// Pinning the algorithm with WithValidMethods prevents algorithm-confusion
// attacks ("alg":"none" or an attacker-chosen algorithm).
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	// Both subject claims are required — a signed token missing either is
	// malformed, not merely anonymous.
	if c.Subject == "" || c.UserID == 0 {
		return Identity{}, ErrMalformedClaims
	}

	return Identity{ID: c.UserID, Username: c.Subject}, nil
}
