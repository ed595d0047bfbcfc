package repositories

import (
	"fmt"
	"sort"

	"pantry/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// ListIngredients retrieves all catalog ingredients with their category
// and macro tags, ordered by category name.
func (r *GORMCatalogRepository) ListIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Preload("Category").Preload("Macros").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	sort.Slice(ingredients, func(i, j int) bool {
		if ingredients[i].Category.Name != ingredients[j].Category.Name {
			return ingredients[i].Category.Name < ingredients[j].Category.Name
		}
		return ingredients[i].Name < ingredients[j].Name
	})
	return ingredients, nil
}

// GetIngredientByID retrieves a single ingredient with its associations.
func (r *GORMCatalogRepository) GetIngredientByID(id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.Preload("Category").Preload("Macros").First(&ingredient, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("ingredient with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get ingredient by ID %s: %w", id, err)
	}
	return &ingredient, nil
}

// GetIngredientByName retrieves an ingredient by its normalized name.
func (r *GORMCatalogRepository) GetIngredientByName(name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("ingredient %s not found", name)
		}
		return nil, fmt.Errorf("failed to get ingredient by name %s: %w", name, err)
	}
	return &ingredient, nil
}

// FindIngredientExcluding looks for a different ingredient already using
// the given name. Used for duplicate detection on rename.
func (r *GORMCatalogRepository) FindIngredientExcluding(name, excludeID string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, "name = ? AND id != ?", name, excludeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no other ingredient named %s", name)
		}
		return nil, fmt.Errorf("failed to find ingredient %s: %w", name, err)
	}
	return &ingredient, nil
}

// CreateIngredient inserts an ingredient and its macro tag rows in a
// single transaction.
func (r *GORMCatalogRepository) CreateIngredient(ingredient *models.Ingredient, macroIDs []string) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ingredient).Error; err != nil {
			return fmt.Errorf("failed to create ingredient: %w", err)
		}
		if len(macroIDs) == 0 {
			return nil
		}
		var macros []models.Macronutrient
		if err := tx.Find(&macros, "id IN ?", macroIDs).Error; err != nil {
			return fmt.Errorf("failed to load macronutrients: %w", err)
		}
		if err := tx.Model(ingredient).Association("Macros").Append(&macros); err != nil {
			return fmt.Errorf("failed to tag macronutrients: %w", err)
		}
		return nil
	})
}

// UpdateIngredient updates an ingredient's name and category.
func (r *GORMCatalogRepository) UpdateIngredient(id, name, categoryID string) error {
	res := r.db.Model(&models.Ingredient{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ingredient with ID %s not found for update", id)
	}
	return nil
}

// DeleteIngredient removes an ingredient together with its macro tag
// rows and every user's inventory rows that reference it, in one
// transaction. Nothing is left dangling.
func (r *GORMCatalogRepository) DeleteIngredient(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ingredient := models.Ingredient{ID: id}
		if err := tx.Model(&ingredient).Association("Macros").Clear(); err != nil {
			return fmt.Errorf("failed to clear macronutrient tags: %w", err)
		}
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.Inventory{}).Error; err != nil {
			return fmt.Errorf("failed to delete inventory rows: %w", err)
		}
		res := tx.Delete(&models.Ingredient{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete ingredient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("ingredient with ID %s not found for deletion", id)
		}
		return nil
	})
}

// ListCategories retrieves all categories ordered by name.
func (r *GORMCatalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByName retrieves a category by its name.
func (r *GORMCatalogRepository) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category %s not found", name)
		}
		return nil, fmt.Errorf("failed to get category %s: %w", name, err)
	}
	return &category, nil
}

// ListMacronutrients retrieves all macronutrients ordered by name.
func (r *GORMCatalogRepository) ListMacronutrients() ([]models.Macronutrient, error) {
	var macros []models.Macronutrient
	if err := r.db.Order("name").Find(&macros).Error; err != nil {
		return nil, fmt.Errorf("failed to list macronutrients: %w", err)
	}
	return macros, nil
}
