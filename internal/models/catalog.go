package models

import "time"

// Category is a reference table for ingredient categories (Produce,
// Dairy, ...). Seeded at startup and rarely mutated.
type Category struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
}

// Macronutrient is a reference table for macro tags (Protein, Fat, ...).
type Macronutrient struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
}

// Ingredient is a row in the shared, cross-user catalog. Names are
// stored trimmed and lowercased, and are unique across the catalog.
// The macro tag set is fully replaced on each edit.
type Ingredient struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string          `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=50"`
	CategoryID string          `json:"category_id" gorm:"type:varchar(36);index"`
	Category   Category        `json:"category"`
	Macros     []Macronutrient `json:"macros" gorm:"many2many:ingredient_macronutrients"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
