package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, 30, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 25)

	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestMap_KeepsPagination(t *testing.T) {
	page := NewPaginatedResult([]int{1, 2}, NewPagination(1, 2, 5))

	mapped := Map(page, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, mapped.Items)
	assert.Same(t, page.Pagination, mapped.Pagination)
}
