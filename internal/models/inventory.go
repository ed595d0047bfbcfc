package models

import "time"

// Inventory is a user-scoped record of a catalog ingredient the user
// currently holds. CategoryID is a snapshot of the ingredient's category
// taken when the row is inserted. At most one row exists per
// (user, ingredient) pair; the services enforce this.
type Inventory struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string     `json:"user_id" gorm:"type:varchar(36);index"`
	IngredientID string     `json:"ingredient_id" gorm:"type:varchar(36);index"`
	CategoryID   string     `json:"category_id" gorm:"type:varchar(36)"`
	Ingredient   Ingredient `json:"ingredient"`
	Category     Category   `json:"category"`
	Quantity     string     `json:"quantity" gorm:"type:varchar(100)"` // free text, e.g. "2" or "a handful"
	CreatedAt    time.Time
	UpdatedAt    time.Time `json:"last_updated"`
}
