package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teledetect-platform/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:       "8f9c6a1e-0000-4000-8000-000000000001",
		Email:    "alice@x.com",
		Username: "alice",
		Role:     model.RoleViewer,
	}
}

func TestNewCodec(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewCodec("", "HS256", time.Minute)
		assert.Error(t, err)
	})

	t.Run("rejects unknown algorithm", func(t *testing.T) {
		_, err := NewCodec("secret", "RS256", time.Minute)
		assert.Error(t, err)
	})

	t.Run("accepts HMAC family", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			_, err := NewCodec("secret", alg, time.Minute)
			assert.NoError(t, err, alg)
		}
	})
}

func TestCodec_IssueAndDecode(t *testing.T) {
	codec, err := NewCodec("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	user := testUser()
	tokenString, err := codec.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := codec.Decode(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestCodec_DecodeFailuresAreUniform(t *testing.T) {
	codec, err := NewCodec("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewCodec("other-secret", "HS256", time.Hour)
		require.NoError(t, err)

		tokenString, err := other.Issue(testUser())
		require.NoError(t, err)

		_, err = codec.Decode(tokenString)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived, err := NewCodec("test-secret", "HS256", time.Millisecond)
		require.NoError(t, err)

		tokenString, err := shortLived.Issue(testUser())
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = codec.Decode(tokenString)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := codec.Decode("not.a.token")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := codec.Decode("")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func TestCodec_DecodeExpired(t *testing.T) {
	shortLived, err := NewCodec("test-secret", "HS256", time.Millisecond)
	require.NoError(t, err)

	user := testUser()
	tokenString, err := shortLived.Issue(user)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	t.Run("elapsed expiry still yields the subject", func(t *testing.T) {
		claims, err := shortLived.DecodeExpired(tokenString)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("signature failure is still rejected", func(t *testing.T) {
		other, err := NewCodec("other-secret", "HS256", time.Millisecond)
		require.NoError(t, err)

		_, err = other.DecodeExpired(tokenString)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})
}
