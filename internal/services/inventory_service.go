package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

// EventPublisher publishes inventory change events. Satisfied by
// pkg/rabbitmq.Client; a nil publisher disables eventing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// InventoryItemView is one row of a user's inventory listing, with the
// ingredient's macro tag names joined for display.
type InventoryItemView struct {
	ID          string    `json:"id"`
	Ingredient  string    `json:"ingredient"`
	Category    string    `json:"category"`
	Quantity    string    `json:"quantity"`
	Macros      string    `json:"macros"`
	LastUpdated time.Time `json:"last_updated"`
}

// InventoryEdit is the prefill data for the inventory edit form.
type InventoryEdit struct {
	ID             string        `json:"id"`
	IngredientID   string        `json:"ingredient_id"`
	IngredientName string        `json:"ingredient_name"`
	CategoryName   string        `json:"category_name"`
	Quantity       string        `json:"quantity"`
	SelectedMacros []string      `json:"selected_macros"`
	Categories     []string      `json:"categories"`
	Macros         []MacroChoice `json:"macro_choices"`
}

// InventoryService handles business logic for a user's ingredient
// inventory.
type InventoryService struct {
	inventoryRepo repositories.InventoryRepository
	catalogRepo   repositories.CatalogRepository
	publisher     EventPublisher
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo repositories.InventoryRepository, catalogRepo repositories.CatalogRepository, publisher EventPublisher) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		catalogRepo:   catalogRepo,
		publisher:     publisher,
	}
}

// List returns a user's inventory, most recently updated first.
func (s *InventoryService) List(userID string) ([]InventoryItemView, error) {
	items, err := s.inventoryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]InventoryItemView, 0, len(items))
	for _, item := range items {
		macroNames := make([]string, 0, len(item.Ingredient.Macros))
		for _, m := range item.Ingredient.Macros {
			macroNames = append(macroNames, m.Name)
		}
		views = append(views, InventoryItemView{
			ID:          item.ID,
			Ingredient:  item.Ingredient.Name,
			Category:    item.Category.Name,
			Quantity:    item.Quantity,
			Macros:      strings.Join(macroNames, ", "),
			LastUpdated: item.UpdatedAt,
		})
	}
	return views, nil
}

// Add stocks an existing catalog ingredient in the user's inventory.
// An unknown ingredient yields ErrNotInCatalog so the handler can
// redirect into the catalog-creation flow; holding the ingredient
// already is a field error.
func (s *InventoryService) Add(userID, ingredientName, quantity string) error {
	name := normalizeName(ingredientName)
	quantity = strings.ToLower(strings.TrimSpace(quantity))

	ingredient, err := s.catalogRepo.GetIngredientByName(name)
	if err != nil || ingredient == nil {
		return ErrNotInCatalog
	}

	if existing, err := s.inventoryRepo.GetByUserAndIngredient(userID, ingredient.ID); err == nil && existing != nil {
		return FieldErrors{"ingredient": fmt.Sprintf("'%s' is already in your inventory. Edit to update information.", name)}
	}

	item := &models.Inventory{
		UserID:       userID,
		IngredientID: ingredient.ID,
		CategoryID:   ingredient.CategoryID,
		Quantity:     quantity,
	}
	if err := s.inventoryRepo.Create(item); err != nil {
		return fmt.Errorf("failed to add inventory item: %w", err)
	}

	s.publishEvent("inventory.added", userID, item.ID, ingredient.ID)
	return nil
}

// EditData returns the prefill data for the inventory edit form, scoped
// to the owning user; ErrNotFound if the row is not theirs.
func (s *InventoryService) EditData(inventoryID, userID string) (*InventoryEdit, error) {
	item, err := s.inventoryRepo.GetByID(inventoryID, userID)
	if err != nil || item == nil {
		return nil, ErrNotFound
	}

	selected := make([]string, 0, len(item.Ingredient.Macros))
	for _, m := range item.Ingredient.Macros {
		selected = append(selected, m.ID)
	}

	edit := &InventoryEdit{
		ID:             item.ID,
		IngredientID:   item.IngredientID,
		IngredientName: item.Ingredient.Name,
		CategoryName:   item.Category.Name,
		Quantity:       item.Quantity,
		SelectedMacros: selected,
	}

	categories, err := s.catalogRepo.ListCategories()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		edit.Categories = append(edit.Categories, c.Name)
	}
	macros, err := s.catalogRepo.ListMacronutrients()
	if err != nil {
		return nil, err
	}
	for _, m := range macros {
		edit.Macros = append(edit.Macros, MacroChoice{ID: m.ID, Name: m.Name})
	}
	return edit, nil
}

// Update applies an inventory edit. The ingredient rename/recategorize
// is a shared-catalog mutation; together with the inventory row update
// and the macro tag replacement it runs as a single transaction in the
// repository.
func (s *InventoryService) Update(inventoryID, userID, newName, newQuantity, newCategoryName string, macroIDs []string) error {
	item, err := s.inventoryRepo.GetByID(inventoryID, userID)
	if err != nil || item == nil {
		return ErrNotFound
	}

	name := normalizeName(newName)

	category, err := s.catalogRepo.GetCategoryByName(newCategoryName)
	if err != nil || category == nil {
		return FieldErrors{"new_category": "You must choose a valid category."}
	}

	if existing, err := s.catalogRepo.FindIngredientExcluding(name, item.IngredientID); err == nil && existing != nil {
		return FieldErrors{"new_name": fmt.Sprintf("Ingredient '%s' already exists. Choose a different name.", name)}
	}

	update := repositories.InventoryItemUpdate{
		InventoryID:  inventoryID,
		UserID:       userID,
		IngredientID: item.IngredientID,
		Name:         name,
		CategoryID:   category.ID,
		Quantity:     strings.TrimSpace(newQuantity),
		MacroIDs:     macroIDs,
	}
	if err := s.inventoryRepo.ApplyUpdate(update); err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.publishEvent("inventory.updated", userID, inventoryID, item.IngredientID)
	return nil
}

// Delete removes an inventory row scoped to its owner; ErrNotFound when
// the row does not exist for that user.
func (s *InventoryService) Delete(inventoryID, userID string) error {
	item, err := s.inventoryRepo.GetByID(inventoryID, userID)
	if err != nil || item == nil {
		return ErrNotFound
	}
	if err := s.inventoryRepo.Delete(inventoryID, userID); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.publishEvent("inventory.removed", userID, inventoryID, item.IngredientID)
	return nil
}

// publishEvent emits an inventory change event. Failures are logged and
// never fail the request.
func (s *InventoryService) publishEvent(event, userID, inventoryID, ingredientID string) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":         event,
		"user_id":       userID,
		"inventory_id":  inventoryID,
		"ingredient_id": ingredientID,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event for inventory %s: %v", event, inventoryID, err)
	}
}
