package handlers

import (
	"errors"
	"log"
	"net/url"

	"pantry/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles HTTP requests for a user's inventory.
type InventoryHandler struct {
	inventoryService *services.InventoryService
	catalogService   *services.CatalogService
	validate         *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService *services.InventoryService, catalogService *services.CatalogService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		catalogService:   catalogService,
		validate:         newValidator(),
	}
}

// RegisterRoutes registers the inventory routes. All of them sit behind
// the login guard.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Post("/add_ingredient", h.HandleAddIngredient)
	router.Get("/inventory/update/:id", h.HandleEditInventory)
	router.Post("/inventory/update/:id", h.HandleUpdateInventory)
	router.Post("/inventory/delete/:id", h.HandleDeleteInventory)
}

// AddIngredientRequest is the quick-add form on the home page.
type AddIngredientRequest struct {
	Ingredient string `json:"ingredient" form:"ingredient" validate:"required,min=2,max=50"`
	Quantity   string `json:"quantity" form:"quantity" validate:"required"`
}

// UpdateInventoryRequest is the inventory edit form.
type UpdateInventoryRequest struct {
	NewName     string   `json:"new_name" form:"new_name" validate:"required,min=2,max=50"`
	Quantity    string   `json:"quantity" form:"quantity"`
	NewCategory string   `json:"new_category" form:"new_category" validate:"required"`
	Macros      []string `json:"macros" form:"macros"`
}

// HandleHome shows the logged-in user's inventory plus the catalog's
// ingredient names for the quick-add field.
func (h *InventoryHandler) HandleHome(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	inventory, err := h.inventoryService.List(userID)
	if err != nil {
		log.Printf("Error listing inventory for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve inventory",
		})
	}

	page, err := h.catalogService.List()
	if err != nil {
		log.Printf("Error listing catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredient catalog",
		})
	}
	allIngredients := make([]string, 0, len(page.Ingredients))
	for _, ing := range page.Ingredients {
		allIngredients = append(allIngredients, ing.Ingredient)
	}

	return c.JSON(fiber.Map{
		"username":        c.Locals("username"),
		"inventory":       inventory,
		"all_ingredients": allIngredients,
	})
}

// HandleAddIngredient stocks an existing catalog ingredient. When the
// ingredient is unknown the user is redirected into the catalog-creation
// flow with the submitted name and quantity carried along.
func (h *InventoryHandler) HandleAddIngredient(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req AddIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-ingredient request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.renderAddFailure(c, userID, fiber.StatusBadRequest, collectErrors(err))
	}

	if err := h.inventoryService.Add(userID, req.Ingredient, req.Quantity); err != nil {
		if errors.Is(err, services.ErrNotInCatalog) {
			params := url.Values{}
			params.Set("ingredient_name", req.Ingredient)
			params.Set("quantity", req.Quantity)
			return c.Redirect("/add_inventory_item?"+params.Encode(), fiber.StatusSeeOther)
		}
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			return h.renderAddFailure(c, userID, fieldErrorStatus(fieldErrs), fieldErrs)
		}
		log.Printf("Error adding ingredient for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add ingredient",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// renderAddFailure re-renders the home view with errors and the current
// inventory, preserving what the original form flow showed.
func (h *InventoryHandler) renderAddFailure(c *fiber.Ctx, userID string, status int, fieldErrs map[string]string) error {
	inventory, err := h.inventoryService.List(userID)
	if err != nil {
		log.Printf("Error listing inventory for user %s: %v", userID, err)
		inventory = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"errors":    fieldErrs,
		"inventory": inventory,
	})
}

// HandleEditInventory returns the prefilled edit form data for an
// inventory row.
func (h *InventoryHandler) HandleEditInventory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	inventoryID := c.Params("id")

	edit, err := h.inventoryService.EditData(inventoryID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		log.Printf("Error loading inventory item %s: %v", inventoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load inventory item",
		})
	}

	inventory, err := h.inventoryService.List(userID)
	if err != nil {
		log.Printf("Error listing inventory for user %s: %v", userID, err)
		inventory = nil
	}

	return c.JSON(fiber.Map{
		"inventory_item": edit,
		"inventory":      inventory,
	})
}

// HandleUpdateInventory applies an inventory edit.
func (h *InventoryHandler) HandleUpdateInventory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	inventoryID := c.Params("id")

	var req UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-inventory request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.renderAddFailure(c, userID, fiber.StatusBadRequest, collectErrors(err))
	}

	err := h.inventoryService.Update(inventoryID, userID, req.NewName, req.Quantity, req.NewCategory, req.Macros)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			return h.renderAddFailure(c, userID, fieldErrorStatus(fieldErrs), fieldErrs)
		}
		log.Printf("Error updating inventory item %s: %v", inventoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update inventory item",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleDeleteInventory removes an inventory row. A row that does not
// exist for this user is a no-op redirect.
func (h *InventoryHandler) HandleDeleteInventory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	inventoryID := c.Params("id")

	if err := h.inventoryService.Delete(inventoryID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		log.Printf("Error deleting inventory item %s: %v", inventoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete inventory item",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
