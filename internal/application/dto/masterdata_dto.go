package dto

import "github.com/shopspring/decimal"

// CreateTenantRequest alta de empresa/suscripción.
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Plan string `json:"plan" validate:"omitempty,oneof=esencial trazabilidad multi_sucursal"`
}

// CreateWarehouseRequest alta de sucursal (sujeta al plan).
type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"max=255"`
}

// CreateLocationRequest alta de ubicación dentro de una sucursal (sujeta al plan).
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,max=100"`
}

// CreateMaterialRequest alta de materia prima.
type CreateMaterialRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Unit string `json:"unit" validate:"required,max=50"`
}

// SetReorderMinRequest fija el mínimo de reposición de un material por ubicación.
type SetReorderMinRequest struct {
	LocationID string          `json:"location_id" validate:"required,uuid4"`
	Min        decimal.Decimal `json:"min"`
	Unit       string          `json:"unit"`
}

// CreateProductRequest alta de producto terminado.
type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Unit          string `json:"unit" validate:"required,max=50"`
	ShelfLifeDays int    `json:"shelf_life_days" validate:"gte=0,lte=365"`
}

// RecipeLineRequest línea de receta: cantidad en la unidad de captura.
type RecipeLineRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid4"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	Unit       string          `json:"unit"`
}

// CreateRecipeRequest alta de receta con líneas; la versión se asigna sola.
type CreateRecipeRequest struct {
	ProductID     string              `json:"product_id" validate:"required,uuid4"`
	Name          string              `json:"name" validate:"max=120"`
	YieldPerBatch decimal.Decimal     `json:"yield_per_batch" validate:"required"`
	Description   string              `json:"description"`
	Lines         []RecipeLineRequest `json:"lines" validate:"required,min=1,dive"`
}
