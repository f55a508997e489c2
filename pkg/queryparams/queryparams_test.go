package queryparams

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	p := ListParams{Page: 0, PerPage: 0, SortBy: "", OrderBy: "YUKARI"}
	p.Validate()
	require.Equal(t, DefaultPage, p.Page)
	require.Equal(t, DefaultPerPage, p.PerPage)
	require.Equal(t, DefaultSortBy, p.SortBy)
	require.Equal(t, DefaultOrderBy, p.OrderBy)

	p = ListParams{Page: 2, PerPage: 500, OrderBy: "asc"}
	p.Validate()
	require.Equal(t, MaxPerPage, p.PerPage)
	require.Equal(t, "asc", p.OrderBy)
}

func TestCalculateOffsetAndPages(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 10}
	require.Equal(t, 20, p.CalculateOffset())

	require.Equal(t, 0, CalculateTotalPages(0, 10))
	require.Equal(t, 1, CalculateTotalPages(10, 10))
	require.Equal(t, 2, CalculateTotalPages(11, 10))
}
