package handlers

import (
	"errors"
	"log"

	"pantry/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles the recipe suggestion lookup.
type RecipeHandler struct {
	recipeService *services.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
	}
}

// RegisterRoutes registers the recipe route behind the login guard.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/get_recipes", h.HandleGetRecipes)
}

// HandleGetRecipes looks up recipe suggestions for the user's current
// inventory. An empty inventory and an upstream failure each produce a
// page-level message; upstream errors are not distinguished by status.
func (h *RecipeHandler) HandleGetRecipes(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	recipes, err := h.recipeService.Find(userID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyInventory) {
			return c.JSON(fiber.Map{
				"error": "Your inventory is empty. Add ingredients first!",
			})
		}
		log.Printf("Recipe lookup failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch recipes. Please try again later.",
		})
	}

	return c.JSON(fiber.Map{
		"recipes": recipes,
	})
}
