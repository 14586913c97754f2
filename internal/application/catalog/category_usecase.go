package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

// CategoryUseCase CRUD de categorías. El nombre es único y la eliminación se
// bloquea mientras existan productos asociados.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo, log: log}
}

// Create crea una categoría. Falla con ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	uc.log.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("categoría creada")
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Update actualiza nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.Description = in.Description
	category.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría. Falla con ErrConflict si algún producto la
// referencia: el borrado se bloquea, no cae en cascada.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		uc.log.Warn().Str("category_id", id).Int("products", count).Msg("eliminación de categoría bloqueada por productos asociados")
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
