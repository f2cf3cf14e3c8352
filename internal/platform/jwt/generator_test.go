package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerator_GenerateToken は生成されたトークンが検証可能で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		subject    string
		expiration time.Duration
	}{
		{"frontend client", "web-frontend", time.Hour},
		{"long lived", "batch-client", 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", tt.expiration)
			tokenStr, err := gen.GenerateToken(tt.subject)
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
				_, ok := tok.Method.(*jwt.SigningMethodHMAC)
				assert.True(t, ok, "unexpected signing method: %v", tok.Header["alg"])
				return []byte("test-secret"), nil
			})
			require.NoError(t, err)
			assert.True(t, token.Valid)
			assert.Equal(t, tt.subject, claims.Subject)
			assert.Equal(t, Issuer, claims.Issuer)
			require.NotNil(t, claims.ExpiresAt)
			require.NotNil(t, claims.IssuedAt)
			assert.Equal(t, tt.expiration, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
		})
	}
}

// TestGenerator_GenerateToken_FixedClock は exp/iat が時計に従うことを検証します。
func TestGenerator_GenerateToken_FixedClock(t *testing.T) {
	t.Parallel()

	fixed := time.Now().Truncate(time.Second)
	gen := NewGenerator("test-secret", 2*time.Hour)
	gen.now = func() time.Time { return fixed }

	tokenStr, err := gen.GenerateToken("client")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixed.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

// TestGenerator_GenerateToken_EmptySubject は空のsubjectを拒否することを検証します。
func TestGenerator_GenerateToken_EmptySubject(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator("s", time.Hour).GenerateToken("")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

// TestGenerator_DifferentSubjectsProduceDifferentTokens は異なるsubjectで異なるトークンになることを検証します。
func TestGenerator_DifferentSubjectsProduceDifferentTokens(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	t1, err := gen.GenerateToken("a")
	require.NoError(t, err)
	t2, err := gen.GenerateToken("b")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}
