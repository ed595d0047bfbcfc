package repositories

import (
	"fmt"

	"pantry/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{
		db: db,
	}
}

// ListByUser retrieves a user's inventory with ingredient, category and
// macro tags loaded, most recently updated first.
func (r *GORMInventoryRepository) ListByUser(userID string) ([]models.Inventory, error) {
	var items []models.Inventory
	err := r.db.
		Preload("Ingredient").
		Preload("Ingredient.Macros").
		Preload("Category").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for user %s: %w", userID, err)
	}
	return items, nil
}

// GetByID retrieves an inventory row scoped to its owner.
func (r *GORMInventoryRepository) GetByID(id, userID string) (*models.Inventory, error) {
	var item models.Inventory
	err := r.db.
		Preload("Ingredient").
		Preload("Ingredient.Macros").
		Preload("Category").
		First(&item, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("inventory item %s not found for user %s", id, userID)
		}
		return nil, fmt.Errorf("failed to get inventory item %s: %w", id, err)
	}
	return &item, nil
}

// GetByUserAndIngredient finds the row a user holds for an ingredient,
// if any. Used to enforce the one-row-per-(user, ingredient) rule.
func (r *GORMInventoryRepository) GetByUserAndIngredient(userID, ingredientID string) (*models.Inventory, error) {
	var item models.Inventory
	err := r.db.First(&item, "user_id = ? AND ingredient_id = ?", userID, ingredientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no inventory row for user %s and ingredient %s", userID, ingredientID)
		}
		return nil, fmt.Errorf("failed to get inventory row: %w", err)
	}
	return &item, nil
}

// Create inserts a new inventory row.
func (r *GORMInventoryRepository) Create(item *models.Inventory) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// ApplyUpdate applies an inventory edit as one transaction: the shared
// ingredient's name/category, the owner's inventory row, and the
// ingredient's macro tag set (delete-all, insert-selected).
func (r *GORMInventoryRepository) ApplyUpdate(update InventoryItemUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Ingredient{}).Where("id = ?", update.IngredientID).Updates(map[string]interface{}{
			"name":        update.Name,
			"category_id": update.CategoryID,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update ingredient: %w", err)
		}

		res := tx.Model(&models.Inventory{}).
			Where("id = ? AND user_id = ?", update.InventoryID, update.UserID).
			Updates(map[string]interface{}{
				"quantity":    update.Quantity,
				"category_id": update.CategoryID,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update inventory item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("inventory item %s not found for update", update.InventoryID)
		}

		var macros []models.Macronutrient
		if len(update.MacroIDs) > 0 {
			if err := tx.Find(&macros, "id IN ?", update.MacroIDs).Error; err != nil {
				return fmt.Errorf("failed to load macronutrients: %w", err)
			}
		}
		ingredient := models.Ingredient{ID: update.IngredientID}
		if err := tx.Model(&ingredient).Association("Macros").Replace(&macros); err != nil {
			return fmt.Errorf("failed to replace macronutrient tags: %w", err)
		}
		return nil
	})
}

// Delete removes an inventory row scoped to its owner.
func (r *GORMInventoryRepository) Delete(id, userID string) error {
	res := r.db.Delete(&models.Inventory{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory item %s not found for deletion", id)
	}
	return nil
}

// IngredientNames returns the distinct ingredient names in a user's
// inventory, for the recipe search query.
func (r *GORMInventoryRepository) IngredientNames(userID string) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Inventory{}).
		Joins("JOIN ingredients ON ingredients.id = inventories.ingredient_id").
		Where("inventories.user_id = ?", userID).
		Distinct().
		Pluck("ingredients.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredient names for user %s: %w", userID, err)
	}
	return names, nil
}
