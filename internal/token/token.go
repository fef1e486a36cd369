// Package token issues and validates the bearer tokens used for API auth.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned by Validate for structurally valid tokens
	// whose expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for every other validation failure:
	// bad signature, wrong algorithm, unparseable token, bad subject.
	ErrTokenMalformed = errors.New("token is malformed")
)

// Claims is the decoded identity carried by a valid token.
type Claims struct {
	UserID   uint
	Username string
}

// Codec signs and verifies HS256 bearer tokens with an injected secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a Codec using the given signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue creates a signed token for the given user. A zero ttl issues a token
// without an expiry claim, which never expires; login uses that mode.
func (c *Codec) Issue(userID uint, username string, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "ripple-api",                           // Issuer
		"aud":      "ripple-client",                        // Audience
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      generateJTI(),                          // JWT ID (unique identifier)
	}
	if ttl != 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Validate parses and verifies a token string and returns its claims.
// Expired tokens are distinguished from every other failure because some
// endpoints report them differently.
func (c *Codec) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	subStr, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, ErrTokenMalformed
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	username, _ := mapClaims["username"].(string)

	return &Claims{UserID: uint(userID), Username: username}, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
