package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // errors wraps parse failures
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
)

// TokenTTL is the fixed lifetime of a login token.
const TokenTTL = time.Hour

// Claims is the payload of a login token.  ID and Email identify the user;
// the registered claims carry issued-at and expiry.
type Claims struct {
    ID    int64  `json:"id"`
    Email string `json:"email"`
    jwt.RegisteredClaims
}

// ErrInvalidToken is returned by ParseToken for any signature, algorithm or
// expiry failure.
var ErrInvalidToken = errors.New("invalid token")

// NewToken builds and signs an HS256 JWT embedding {id, email} that expires
// ttl after now.
func NewToken(secret string, id int64, email string, ttl time.Duration) (string, error) {
    now := time.Now().UTC()
    claims := Claims{
        ID:    id,
        Email: email,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of raw against secret and
// returns its claims.  Only HMAC signing methods are accepted.
func ParseToken(secret, raw string) (*Claims, error) {
    claims := &Claims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything but HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    }, jwt.WithExpirationRequired())
    if err != nil {
        return nil, errors.Join(ErrInvalidToken, err)
    }
    if !tok.Valid {
        return nil, ErrInvalidToken
    }
    return claims, nil
}
