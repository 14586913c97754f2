package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcamposl/gestock-api/internal/application/dto"
)

func TestNewPagedResult_DerivaMetadatos(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	// 25 elementos en páginas de 10: la página 3 lleva 5 y es la última.
	page := dto.NewPagedResult(items, 25, 3, 10)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, 3, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPreviousPage)
	assert.False(t, page.HasNextPage)

	primera := dto.NewPagedResult(items, 25, 1, 10)
	assert.False(t, primera.HasPreviousPage)
	assert.True(t, primera.HasNextPage)
}

func TestNewPagedResult_Vacio(t *testing.T) {
	page := dto.NewPagedResult[string](nil, 0, 1, 10)
	assert.NotNil(t, page.Items, "items debe serializar como [] y no como null")
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasPreviousPage)
	assert.False(t, page.HasNextPage)
}

func TestNewPagedResult_TotalExacto(t *testing.T) {
	// 20 elementos en páginas de 10: exactamente 2 páginas.
	page := dto.NewPagedResult([]int{1, 2}, 20, 2, 10)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, dto.PageSlice(items, 1, 3))
	assert.Equal(t, []int{4, 5, 6}, dto.PageSlice(items, 2, 3))
	assert.Equal(t, []int{7}, dto.PageSlice(items, 3, 3), "la última página lleva el resto")
	assert.Empty(t, dto.PageSlice(items, 4, 3), "más allá del final: vacío")
	assert.Empty(t, dto.PageSlice(items, 0, 3))
	assert.Empty(t, dto.PageSlice(items, 1, 0))
}
