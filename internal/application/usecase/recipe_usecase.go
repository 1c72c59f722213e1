package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/internal/domain/units"
)

// RecipeUseCase gestión de recetas versionadas y sus líneas.
type RecipeUseCase struct {
	recipeRepo   repository.RecipeRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
) *RecipeUseCase {
	return &RecipeUseCase{
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
	}
}

// RecipeLineInput línea capturada: cantidad en la unidad que escribió el usuario.
// Se convierte a la unidad base del material AQUÍ, una sola vez; nunca después.
type RecipeLineInput struct {
	MaterialID string
	Quantity   decimal.Decimal
	Unit       string // unidad de captura (g, kg, ml, l…); vacía = ya en base
}

// CreateInput receta a crear. La versión se asigna automáticamente:
// siguiente versión libre de (producto, nombre).
type CreateInput struct {
	TenantID      string
	ProductID     string
	Name          string
	YieldPerBatch decimal.Decimal
	Description   string
	Lines         []RecipeLineInput
}

// Create crea la receta con sus líneas, normalizando unidades a base.
func (uc *RecipeUseCase) Create(ctx context.Context, in CreateInput) (*entity.Recipe, error) {
	if in.Name == "" {
		in.Name = "Tradicional"
	}
	if !in.YieldPerBatch.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("rendimiento por lote debe ser > 0: %w", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("la receta no tiene líneas: %w", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != in.TenantID {
		return nil, domain.ErrNotFound
	}

	lines := make([]entity.RecipeLine, 0, len(in.Lines))
	for _, ln := range in.Lines {
		if !ln.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("cantidad de línea debe ser > 0: %w", domain.ErrInvalidInput)
		}
		material, err := uc.materialRepo.GetByID(ctx, ln.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil || material.TenantID != in.TenantID {
			return nil, domain.ErrNotFound
		}
		qty := ln.Quantity
		if ln.Unit != "" {
			qty, _ = units.ToBase(qty, ln.Unit)
		}
		lines = append(lines, entity.RecipeLine{
			ID:         uuid.New().String(),
			MaterialID: ln.MaterialID,
			Quantity:   qty,
		})
	}

	version, err := uc.recipeRepo.NextVersion(ctx, in.ProductID, in.Name)
	if err != nil {
		return nil, err
	}
	recipe := &entity.Recipe{
		ProductID:     in.ProductID,
		Name:          in.Name,
		Version:       version,
		YieldPerBatch: in.YieldPerBatch,
		Description:   in.Description,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	if err := uc.recipeRepo.Create(ctx, recipe, lines); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get receta con líneas.
func (uc *RecipeUseCase) Get(ctx context.Context, id string) (*entity.Recipe, []entity.RecipeLine, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if recipe == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.recipeRepo.GetLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return recipe, lines, nil
}

// ListByProduct recetas de un producto (todas las versiones).
func (uc *RecipeUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error) {
	return uc.recipeRepo.ListByProduct(ctx, productID)
}
