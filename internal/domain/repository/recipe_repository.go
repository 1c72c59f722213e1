package repository

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para recetas y sus líneas.
// Las líneas se crean junto con la receta; una receta publicada no cambia de
// composición, se versiona (producto, nombre, versión es único).
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe, lines []entity.RecipeLine) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	GetLines(ctx context.Context, recipeID string) ([]entity.RecipeLine, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error)
	// NextVersion devuelve la siguiente versión libre para (producto, nombre).
	NextVersion(ctx context.Context, productID, name string) (int, error)
}
