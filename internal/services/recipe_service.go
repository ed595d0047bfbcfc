package services

import (
	"fmt"

	"pantry/internal/repositories"
	"pantry/pkg/spoonacular"
)

// recipeResultLimit is the fixed number of suggestions requested per
// lookup.
const recipeResultLimit = 5

// RecipeClient finds recipes by ingredient names. Satisfied by
// pkg/spoonacular.Client.
type RecipeClient interface {
	FindByIngredients(ingredients []string, number int) ([]spoonacular.Recipe, error)
}

// RecipeService suggests recipes for the ingredients a user has on hand.
type RecipeService struct {
	inventoryRepo repositories.InventoryRepository
	client        RecipeClient
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(inventoryRepo repositories.InventoryRepository, client RecipeClient) *RecipeService {
	return &RecipeService{
		inventoryRepo: inventoryRepo,
		client:        client,
	}
}

// Find collects the distinct ingredient names in the user's inventory
// and queries the recipe API with them. ErrEmptyInventory when there is
// nothing to search with; upstream failures are returned as-is, with no
// retry.
func (s *RecipeService) Find(userID string) ([]spoonacular.Recipe, error) {
	names, err := s.inventoryRepo.IngredientNames(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory ingredients: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrEmptyInventory
	}

	recipes, err := s.client.FindByIngredients(names, recipeResultLimit)
	if err != nil {
		return nil, fmt.Errorf("recipe lookup failed: %w", err)
	}
	return recipes, nil
}
