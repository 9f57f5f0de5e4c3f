package departments_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-hr-console/departments"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, (&departments.CreateRequest{Name: "Ops"}).Validate())
	require.True(t, hrerrors.IsValidation((&departments.CreateRequest{Name: "  "}).Validate()))
	require.ErrorContains(t, (&departments.UpdateRequest{Name: strings.Repeat("x", 101)}).Validate(), "at most")
}

func TestListParams(t *testing.T) {
	p := departments.ListParams{Page: 2, PageSize: 20, Search: "op", Status: "active"}
	require.Equal(t, "page=2&page_size=20&search=op&status=active", p.Values().Encode())

	d := &departments.Department{Name: "Ops", IsActive: true}
	require.True(t, p.Matches(d))
	require.False(t, departments.ListParams{Status: "inactive"}.Matches(d))
	require.False(t, departments.ListParams{Search: "finance"}.Matches(d))
}
