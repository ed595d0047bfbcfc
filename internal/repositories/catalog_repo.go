package repositories

import "pantry/internal/models"

// CatalogRepository defines the interface for the shared ingredient
// catalog and its category/macronutrient reference tables.
type CatalogRepository interface {
	ListIngredients() ([]models.Ingredient, error)
	GetIngredientByID(id string) (*models.Ingredient, error)
	GetIngredientByName(name string) (*models.Ingredient, error)
	FindIngredientExcluding(name, excludeID string) (*models.Ingredient, error)
	CreateIngredient(ingredient *models.Ingredient, macroIDs []string) error
	UpdateIngredient(id, name, categoryID string) error
	DeleteIngredient(id string) error
	ListCategories() ([]models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	ListMacronutrients() ([]models.Macronutrient, error)
}
