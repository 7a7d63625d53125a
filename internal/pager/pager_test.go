package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateMiddlePage(t *testing.T) {
	info := Paginate(10, 20, 45)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 45, info.TotalCount)
	assert.True(t, info.HasNextPage)
	assert.True(t, info.HasPreviousPage)
}

func TestPaginateFirstAndLastPage(t *testing.T) {
	first := Paginate(10, 0, 45)
	assert.True(t, first.HasNextPage)
	assert.False(t, first.HasPreviousPage)

	last := Paginate(10, 40, 45)
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPreviousPage)
}

func TestPaginateEmptyResult(t *testing.T) {
	info := Paginate(10, 0, 0)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasNextPage)
	assert.False(t, info.HasPreviousPage)
}

func TestPaginateExactMultiple(t *testing.T) {
	info := Paginate(10, 30, 40)
	assert.Equal(t, 4, info.TotalPages)
	assert.False(t, info.HasNextPage)
}

func TestClamp(t *testing.T) {
	limit, offset := Clamp(0, -5, 25, 100)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 0, offset)

	limit, _ = Clamp(500, 0, 25, 100)
	assert.Equal(t, 100, limit)
}
