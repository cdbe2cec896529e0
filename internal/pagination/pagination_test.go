package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ id uint }

func rowCursor(r row) uint { return r.id }

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		in       int
		expected int
	}{
		{"zero falls back to default", 0, DefaultLimit},
		{"negative falls back to default", -3, DefaultLimit},
		{"in range passes through", 25, 25},
		{"above max is capped", 500, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampLimit(tt.in))
		})
	}
}

func TestNewPage_OverFetchTrimmed(t *testing.T) {
	rows := []row{{id: 10}, {id: 9}, {id: 8}, {id: 7}}

	page := NewPage(rows, 3, rowCursor)

	require.Len(t, page.Items, 3)
	assert.Equal(t, []row{{id: 10}, {id: 9}, {id: 8}}, page.Items)
	assert.True(t, page.Pagination.HasNextPage)
	require.NotNil(t, page.Pagination.NextCursor)
	assert.Equal(t, uint(8), *page.Pagination.NextCursor)
}

func TestNewPage_LastPage(t *testing.T) {
	rows := []row{{id: 2}, {id: 1}}

	page := NewPage(rows, 3, rowCursor)

	assert.Equal(t, rows, page.Items)
	assert.False(t, page.Pagination.HasNextPage)
	assert.Nil(t, page.Pagination.NextCursor)
}

func TestNewPage_ExactlyFull(t *testing.T) {
	// A page that is exactly full but had no extra row has no next page.
	rows := []row{{id: 3}, {id: 2}, {id: 1}}

	page := NewPage(rows, 3, rowCursor)

	assert.Len(t, page.Items, 3)
	assert.False(t, page.Pagination.HasNextPage)
	assert.Nil(t, page.Pagination.NextCursor)
}

func TestNewPage_Empty(t *testing.T) {
	page := NewPage(nil, 9, rowCursor)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.Pagination.HasNextPage)
	assert.Nil(t, page.Pagination.NextCursor)
}
