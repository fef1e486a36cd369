package token

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func TestIssueAndValidate(t *testing.T) {
	codec := NewCodec(testSecret)

	tokenString, err := codec.Issue(42, "alice", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := codec.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestIssueZeroTTLNeverExpires(t *testing.T) {
	codec := NewCodec(testSecret)

	tokenString, err := codec.Issue(7, "bob", 0)
	require.NoError(t, err)

	// The token must carry no exp claim at all.
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	require.NoError(t, err)
	mapClaims := parsed.Claims.(jwt.MapClaims)
	_, hasExp := mapClaims["exp"]
	assert.False(t, hasExp)

	claims, err := codec.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestValidateExpired(t *testing.T) {
	codec := NewCodec(testSecret)

	claims := jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Validate(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateMalformed(t *testing.T) {
	codec := NewCodec(testSecret)

	wrongSecret := func() string {
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).
			SignedString([]byte("some-other-secret-entirely-123456789012"))
		return s
	}

	numericSubject := func() string {
		// sub as a number instead of a string
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 42}).
			SignedString([]byte(testSecret))
		return s
	}

	noneAlgorithm := func() string {
		s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		return s
	}

	tests := []struct {
		name        string
		tokenString string
	}{
		{"Garbage", "not.a.token"},
		{"Empty", ""},
		{"Wrong Secret", wrongSecret()},
		{"Numeric Subject", numericSubject()},
		{"None Algorithm", noneAlgorithm()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Validate(tt.tokenString)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestSubjectRoundTrip(t *testing.T) {
	codec := NewCodec(testSecret)

	for _, id := range []uint{1, 42, 4294967295} {
		tokenString, err := codec.Issue(id, "u"+strconv.FormatUint(uint64(id), 10), time.Minute)
		require.NoError(t, err)
		claims, err := codec.Validate(tokenString)
		require.NoError(t, err)
		assert.Equal(t, id, claims.UserID)
	}
}
