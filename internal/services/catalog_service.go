package services

import (
	"fmt"
	"strings"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

// MacroChoice is a macronutrient option offered by the tag checkboxes.
type MacroChoice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IngredientView is one catalog listing row.
type IngredientView struct {
	ID         string `json:"id"`
	Ingredient string `json:"ingredient"`
	Category   string `json:"category"`
}

// CatalogPage carries everything the catalog page shows: the listing
// plus the category and macro choices for its forms.
type CatalogPage struct {
	Ingredients []IngredientView `json:"ingredients"`
	Categories  []string         `json:"categories"`
	Macros      []MacroChoice    `json:"macros"`
}

// CatalogService handles business logic for the shared ingredient
// catalog.
type CatalogService struct {
	catalogRepo   repositories.CatalogRepository
	inventoryRepo repositories.InventoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo repositories.CatalogRepository, inventoryRepo repositories.InventoryRepository) *CatalogService {
	return &CatalogService{
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
	}
}

// List returns the catalog listing ordered by category, together with
// the category and macro choices.
func (s *CatalogService) List() (*CatalogPage, error) {
	ingredients, err := s.catalogRepo.ListIngredients()
	if err != nil {
		return nil, err
	}

	page := &CatalogPage{
		Ingredients: make([]IngredientView, 0, len(ingredients)),
	}
	for _, ing := range ingredients {
		page.Ingredients = append(page.Ingredients, IngredientView{
			ID:         ing.ID,
			Ingredient: ing.Name,
			Category:   ing.Category.Name,
		})
	}

	page.Categories, page.Macros, err = s.Choices()
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Choices returns the category names and macro options used to populate
// the catalog forms.
func (s *CatalogService) Choices() ([]string, []MacroChoice, error) {
	categories, err := s.catalogRepo.ListCategories()
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	macros, err := s.catalogRepo.ListMacronutrients()
	if err != nil {
		return nil, nil, err
	}
	choices := make([]MacroChoice, 0, len(macros))
	for _, m := range macros {
		choices = append(choices, MacroChoice{ID: m.ID, Name: m.Name})
	}
	return names, choices, nil
}

// Create adds a new ingredient with its macro tags. Names are unique
// across the whole catalog regardless of category, and the category must
// already exist.
func (s *CatalogService) Create(name, categoryName string, macroIDs []string) (*models.Ingredient, error) {
	name = normalizeName(name)

	category, err := s.catalogRepo.GetCategoryByName(categoryName)
	if err != nil || category == nil {
		return nil, FieldErrors{"category": "You must choose a valid category."}
	}

	if existing, err := s.catalogRepo.GetIngredientByName(name); err == nil && existing != nil {
		return nil, FieldErrors{"item": fmt.Sprintf("'%s' already exists in the database.", name)}
	}

	ingredient := &models.Ingredient{
		Name:       name,
		CategoryID: category.ID,
	}
	if err := s.catalogRepo.CreateIngredient(ingredient, macroIDs); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}

// CreateWithInventory is the catalog-creation flow reached from the
// inventory page: it creates the ingredient and then stocks it in the
// initiating user's inventory unless a row already exists.
func (s *CatalogService) CreateWithInventory(userID, name, categoryName, quantity string, macroIDs []string) error {
	ingredient, err := s.Create(name, categoryName, macroIDs)
	if err != nil {
		return err
	}

	if existing, err := s.inventoryRepo.GetByUserAndIngredient(userID, ingredient.ID); err == nil && existing != nil {
		return nil
	}
	item := &models.Inventory{
		UserID:       userID,
		IngredientID: ingredient.ID,
		CategoryID:   ingredient.CategoryID,
		Quantity:     strings.TrimSpace(quantity),
	}
	if err := s.inventoryRepo.Create(item); err != nil {
		return fmt.Errorf("failed to stock new ingredient: %w", err)
	}
	return nil
}

// Update renames and recategorizes an ingredient. A missing ingredient
// or category yields ErrNotFound (silent redirect); a name collision
// with a different ingredient is a field error, matching the
// inventory-edit path.
func (s *CatalogService) Update(id, newName, newCategoryName string) error {
	newName = normalizeName(newName)

	category, err := s.catalogRepo.GetCategoryByName(newCategoryName)
	if err != nil || category == nil {
		return ErrNotFound
	}

	current, err := s.catalogRepo.GetIngredientByID(id)
	if err != nil || current == nil {
		return ErrNotFound
	}

	if existing, err := s.catalogRepo.FindIngredientExcluding(newName, id); err == nil && existing != nil {
		return FieldErrors{"new_name": fmt.Sprintf("Ingredient '%s' already exists. Choose a different name.", newName)}
	}

	if err := s.catalogRepo.UpdateIngredient(id, newName, category.ID); err != nil {
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	return nil
}

// EditData returns the prefill data for the ingredient edit form, or
// ErrNotFound.
func (s *CatalogService) EditData(id string) (*IngredientView, error) {
	ingredient, err := s.catalogRepo.GetIngredientByID(id)
	if err != nil || ingredient == nil {
		return nil, ErrNotFound
	}
	return &IngredientView{
		ID:         ingredient.ID,
		Ingredient: ingredient.Name,
		Category:   ingredient.Category.Name,
	}, nil
}

// Delete removes an ingredient and, transactionally, every macro tag and
// inventory row referencing it. ErrNotFound when the ingredient does not
// exist (silent redirect).
func (s *CatalogService) Delete(id string) error {
	if ingredient, err := s.catalogRepo.GetIngredientByID(id); err != nil || ingredient == nil {
		return ErrNotFound
	}
	if err := s.catalogRepo.DeleteIngredient(id); err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}

// normalizeName trims and lowercases an ingredient name; catalog names
// are unique in this normalized form.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
