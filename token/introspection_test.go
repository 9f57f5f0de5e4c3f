package token_test

import (
	"net/http"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-hr-console/token"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }
	defer func() { token.NowTimeFunc = time.Now }()

	t.Run("active token", func(t *testing.T) {
		raw := signed(t, jwtlib.MapClaims{
			"sub":    "u1",
			"email":  "admin@example.com",
			"tenant": "acme",
			"roles":  []any{"admin", "hr"},
			"iat":    now.Add(-time.Minute).Unix(),
			"exp":    now.Add(time.Hour).Unix(),
		})

		in, err := token.Inspect(raw)
		require.NoError(t, err)
		require.True(t, in.Active)
		require.Equal(t, "u1", in.Subject)
		require.Equal(t, "admin@example.com", in.Email)
		require.Equal(t, "acme", in.Tenant)
		require.Equal(t, []string{"admin", "hr"}, in.Roles)
		require.Equal(t, now.Add(time.Hour).Unix(), in.ExpiresAt.Unix())
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signed(t, jwtlib.MapClaims{"sub": "u1", "tenant_code": "acme", "role": "admin", "exp": now.Add(-time.Second).Unix()})

		in, err := token.Inspect(raw)
		require.NoError(t, err)
		require.False(t, in.Active)
		require.Equal(t, "acme", in.Tenant)
		require.Equal(t, []string{"admin"}, in.Roles)
	})

	t.Run("no exp claim", func(t *testing.T) {
		in, err := token.Inspect(signed(t, jwtlib.MapClaims{"sub": "u1"}))
		require.NoError(t, err)
		require.True(t, in.Active)
		require.True(t, in.ExpiresAt.IsZero())
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := token.Inspect("t1")
		require.Error(t, err)
	})
}

func TestBearer(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	b := token.Bearer("t1")
	b.SetAuthHeader(req)
	require.Equal(t, "Bearer t1", req.Header.Get("Authorization"))
	require.True(t, b.Expiry.IsZero())
	require.True(t, b.Valid())

	exp := time.Now().Add(-time.Minute)
	expired := token.Bearer(signed(t, jwtlib.MapClaims{"exp": exp.Unix()}))
	require.Equal(t, exp.Unix(), expired.Expiry.Unix())
	require.False(t, expired.Valid())
}
