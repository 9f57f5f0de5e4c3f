package tenants_test

import (
	"testing"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/tenants"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	t.Run("trims", func(t *testing.T) {
		code, err := tenants.ParseCode("  acme ")
		require.NoError(t, err)
		require.Equal(t, tenants.Code("acme"), code)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := tenants.ParseCode("   ")
		require.True(t, hrerrors.IsValidation(err))
	})

	t.Run("invalid characters", func(t *testing.T) {
		_, err := tenants.ParseCode("acme/../x")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid characters")
	})
}
