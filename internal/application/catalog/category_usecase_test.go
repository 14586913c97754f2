package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
)

func TestCategoryCreate_NombreDuplicadoFalla(t *testing.T) {
	_, uc, _, _ := newTestCatalog()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "Lácteos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryDelete_BloqueadaConProductosAsociados(t *testing.T) {
	productUC, uc, _, _ := newTestCatalog()
	ctx := context.Background()

	in := validProduct("AGUA-1L")
	in.CategoryID = testCategoryID
	created, err := productUC.Create(ctx, in)
	require.NoError(t, err)

	err = uc.Delete(ctx, testCategoryID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"no debe eliminarse una categoría con productos")

	// Sin productos asociados la eliminación procede.
	require.NoError(t, productUC.Delete(ctx, created.ID))
	assert.NoError(t, uc.Delete(ctx, testCategoryID))

	_, err = uc.GetByID(ctx, testCategoryID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUpdate_NoEncontrada(t *testing.T) {
	_, uc, _, _ := newTestCatalog()
	_, err := uc.Update(context.Background(), "nope", dto.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
