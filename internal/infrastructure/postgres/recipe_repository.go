package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la receta y todas sus líneas.
func (r *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe, lines []entity.RecipeLine) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recipes (id, product_id, name, version, yield_per_batch, description, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		recipe.ID, recipe.ProductID, recipe.Name, recipe.Version,
		recipe.YieldPerBatch, recipe.Description, recipe.Active, recipe.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receta %q v%d", domain.ErrDuplicate, recipe.Name, recipe.Version)
		}
		return fmt.Errorf("create recipe: %w", err)
	}

	lineQuery := `
		INSERT INTO recipe_lines (id, recipe_id, material_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.New().String()
		}
		lines[i].RecipeID = recipe.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			lines[i].ID, lines[i].RecipeID, lines[i].MaterialID, lines[i].Quantity,
		); err != nil {
			return fmt.Errorf("create recipe line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una receta por ID (sin líneas).
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `
		SELECT id, product_id, name, version, yield_per_batch, description, active, created_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.ProductID, &rec.Name, &rec.Version,
		&rec.YieldPerBatch, &rec.Description, &rec.Active, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: receta %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// GetLines obtiene las líneas de una receta.
func (r *RecipeRepo) GetLines(ctx context.Context, recipeID string) ([]entity.RecipeLine, error) {
	query := `
		SELECT id, recipe_id, material_id, quantity
		FROM recipe_lines WHERE recipe_id = $1`
	rows, err := r.q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.MaterialID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListByProduct lista las recetas de un producto, más reciente primero.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error) {
	query := `
		SELECT id, product_id, name, version, yield_per_batch, description, active, created_at
		FROM recipes WHERE product_id = $1
		ORDER BY name, version DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Name, &rec.Version,
			&rec.YieldPerBatch, &rec.Description, &rec.Active, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// NextVersion devuelve la siguiente versión libre para (producto, nombre).
func (r *RecipeRepo) NextVersion(ctx context.Context, productID, name string) (int, error) {
	var max int
	query := `
		SELECT COALESCE(MAX(version), 0)
		FROM recipes WHERE product_id = $1 AND name = $2`
	if err := r.q.QueryRow(ctx, query, productID, name).Scan(&max); err != nil {
		return 0, fmt.Errorf("next recipe version: %w", err)
	}
	return max + 1, nil
}
