//go:build unit
// +build unit

package cryptography

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123"

func TestBcryptHasher(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	hasher, err := NewBcryptHasher(bcrypt.MinCost, log)
	require.NoError(t, err)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, hasher.Compare(hash, "correct horse"))
	assert.False(t, hasher.Compare(hash, "wrong horse"))

	_, err = NewBcryptHasher(99, log)
	assert.Error(t, err)
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	issuerIface, err := NewJWTIssuer(testSecret, time.Hour, log)
	require.NoError(t, err)

	user := &users.User{ID: 42, Email: "ada@example.com", Role: users.RoleAdmin}
	token, err := issuerIface.Issue(user)
	require.NoError(t, err)

	claims, err := issuerIface.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, users.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	iface, err := NewJWTIssuer(testSecret, time.Hour, log)
	require.NoError(t, err)
	j := iface.(*jwtIssuer)

	user := &users.User{ID: 1, Email: "a@example.com", Role: users.RoleUser}

	t.Run("expired", func(t *testing.T) {
		j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := j.Issue(user)
		j.now = time.Now
		require.NoError(t, err)
		_, err = j.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewJWTIssuer("another-secret-of-16", time.Hour, log)
		require.NoError(t, err)
		token, err := other.Issue(user)
		require.NoError(t, err)
		_, err = j.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "iss": issuer}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = j.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := j.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTIssuer_Validation(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	_, err := NewJWTIssuer("short", time.Hour, log)
	assert.Error(t, err)
	_, err = NewJWTIssuer(testSecret, 0, log)
	assert.Error(t, err)
}
