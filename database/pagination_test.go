package database

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRequest(t *testing.T) {
	req, err := NewPageRequest(3, 50, SortByName)
	require.NoError(t, err)
	assert.Equal(t, 2, req.Index())
	assert.Equal(t, 100, req.Offset())
	assert.Equal(t, SortByName, req.Sort)
}

func TestNewPageRequestFirstPageStartsAtZero(t *testing.T) {
	req, err := NewPageRequest(1, 50, SortByID)
	require.NoError(t, err)
	assert.Equal(t, 0, req.Index())
	assert.Equal(t, 0, req.Offset())
}

func TestNewPageRequestRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		page int
		size int
		sort SortField
	}{
		{"zero page", 0, 10, SortByID},
		{"negative page", -1, 10, SortByID},
		{"zero size", 1, 0, SortByID},
		{"unknown sort", 1, 10, SortField("nope")},
		{"offset overflows", math.MaxInt/2 + 2, 2, SortByID},
		{"max page", math.MaxInt, 50, SortByID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPageRequest(tt.page, tt.size, tt.sort)
			assert.ErrorIs(t, err, ErrInvalidPageRequest)
		})
	}
}

func TestNewPageRequestLargestOffset(t *testing.T) {
	req, err := NewPageRequest(math.MaxInt/2+1, 2, SortByID)
	require.NoError(t, err)
	assert.Greater(t, req.Offset(), 0)

	_, err = NewPageRequest(math.MaxInt/2+2, 2, SortByID)
	assert.ErrorIs(t, err, ErrInvalidPageRequest)
}

func TestNewPageComputesTotals(t *testing.T) {
	req, _ := NewPageRequest(2, 50, SortByID)
	page := NewPage([]int{51, 52}, req, 102)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 50, page.Size)
	assert.Equal(t, int64(102), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Empty())
}

func TestNewPageWithNilContentIsEmpty(t *testing.T) {
	req, _ := NewPageRequest(1, 10, SortByID)
	page := NewPage[int](nil, req, 0)

	assert.NotNil(t, page.Content)
	assert.True(t, page.Empty())
	assert.Equal(t, 0, page.TotalPages)
}

func TestMapPage(t *testing.T) {
	req, _ := NewPageRequest(1, 2, SortByID)
	page := MapPage(NewPage([]int{1, 2}, req, 5), strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, page.Content)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
}

func TestIsValidSortField(t *testing.T) {
	for _, f := range []string{"id", "nome_completo", "cep", "cidade", "estado"} {
		assert.True(t, IsValidSortField(f), f)
	}
	assert.False(t, IsValidSortField("id; DROP TABLE usuarios"))
}
