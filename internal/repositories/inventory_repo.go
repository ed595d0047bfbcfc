package repositories

import "pantry/internal/models"

// InventoryItemUpdate carries one user's edit of an inventory row. The
// ingredient rename/recategorization, the inventory row update, and the
// macro tag replacement are applied as a single transaction.
type InventoryItemUpdate struct {
	InventoryID  string
	UserID       string
	IngredientID string
	Name         string
	CategoryID   string
	Quantity     string
	MacroIDs     []string
}

// InventoryRepository defines the interface for per-user inventory data
// access. All reads and writes are scoped to the owning user.
type InventoryRepository interface {
	ListByUser(userID string) ([]models.Inventory, error)
	GetByID(id, userID string) (*models.Inventory, error)
	GetByUserAndIngredient(userID, ingredientID string) (*models.Inventory, error)
	Create(item *models.Inventory) error
	ApplyUpdate(update InventoryItemUpdate) error
	Delete(id, userID string) error
	IngredientNames(userID string) ([]string, error)
}
