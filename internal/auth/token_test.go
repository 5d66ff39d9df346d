package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"name": "John Smith",
		"exp":  exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStoreSetGetDelete(t *testing.T) {
	t.Setenv(TokenEnv, "")
	s := NewStore(t.TempDir())

	ti, err := s.Get()
	require.NoError(t, err)
	assert.Nil(t, ti, "fresh store should be logged out")

	require.NoError(t, s.Set("Bearer opaque-123", nil))
	ti, err = s.Get()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "opaque-123", ti.Token)
	assert.Equal(t, "file", ti.Source)
	assert.Nil(t, ti.ExpiresAt)

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-123", tok)

	require.NoError(t, s.Delete())
	tok, err = s.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.Error(t, s.Set("  bearer  ", nil))
}

func TestEnvOverridesFile(t *testing.T) {
	s := NewStore(t.TempDir())
	t.Setenv(TokenEnv, "")
	require.NoError(t, s.Set("from-file", nil))

	t.Setenv(TokenEnv, "bearer from-env")
	ti, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "from-env", ti.Token)
	assert.Equal(t, "env", ti.Source)
}

func TestJWTExpiryIsRecorded(t *testing.T) {
	t.Setenv(TokenEnv, "")
	s := NewStore(t.TempDir())
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.Set(signed(t, exp), nil))

	ti, err := s.Get()
	require.NoError(t, err)
	require.NotNil(t, ti.ExpiresAt)
	assert.True(t, exp.Equal(*ti.ExpiresAt))
	assert.False(t, ti.Expired(time.Now()))
	assert.True(t, ti.Expired(exp.Add(time.Minute)))
}

func TestClaims(t *testing.T) {
	claims, ok := Claims(signed(t, time.Now().Add(time.Hour)))
	require.True(t, ok)
	assert.Equal(t, "John Smith", claims["name"])

	_, ok = Claims("opaque")
	assert.False(t, ok)
}

func TestWatchSignalsOnLoginAndLogout(t *testing.T) {
	t.Setenv(TokenEnv, "")
	s := NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Set("tok", nil))
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no signal after login")
	}

	require.NoError(t, s.Delete())
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no signal after logout")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, open := <-ch:
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
