package handlers

import (
	"errors"
	"log"
	"strings"

	"pantry/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the shared ingredient
// catalog.
type CatalogHandler struct {
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the catalog routes. The whole catalog sits
// behind the login guard, mutations included.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ingredient", h.HandleCatalogPage)
	router.Post("/add_item", h.HandleAddItem)
	router.Get("/add_inventory_item", h.HandleAddInventoryItemPage)
	router.Post("/add_inventory_item", h.HandleAddInventoryItem)
	router.Get("/update/:id", h.HandleEditIngredient)
	router.Post("/update/:id", h.HandleUpdateIngredient)
	router.Post("/delete/:id", h.HandleDeleteIngredient)
}

// ItemRequest is the catalog-page add form.
type ItemRequest struct {
	Item     string   `json:"item" form:"item" validate:"required,min=2,max=50"`
	Category string   `json:"category" form:"category" validate:"required"`
	Macros   []string `json:"macros" form:"macros"`
}

// InventoryItemRequest is the add form reached from the inventory page;
// it additionally stocks the new ingredient for the submitting user.
type InventoryItemRequest struct {
	Item     string   `json:"item" form:"item" validate:"required,min=2,max=50"`
	Category string   `json:"category" form:"category" validate:"required"`
	Quantity string   `json:"quantity" form:"quantity" validate:"required"`
	Macros   []string `json:"macros" form:"macros"`
}

// UpdateIngredientRequest is the catalog edit form.
type UpdateIngredientRequest struct {
	NewName     string `json:"new_name" form:"new_name" validate:"required,min=2,max=50"`
	NewCategory string `json:"new_category" form:"new_category" validate:"required"`
}

// HandleCatalogPage shows every catalog ingredient grouped by category,
// with the form choices.
func (h *CatalogHandler) HandleCatalogPage(c *fiber.Ctx) error {
	page, err := h.catalogService.List()
	if err != nil {
		log.Printf("Error listing catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredient catalog",
		})
	}
	return c.JSON(page)
}

// HandleAddItem creates a catalog ingredient from the catalog page.
func (h *CatalogHandler) HandleAddItem(c *fiber.Ctx) error {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.renderCatalogFailure(c, fiber.StatusBadRequest, collectErrors(err))
	}

	if _, err := h.catalogService.Create(req.Item, req.Category, req.Macros); err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			return h.renderCatalogFailure(c, fieldErrorStatus(fieldErrs), fieldErrs)
		}
		log.Printf("Error creating ingredient: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create ingredient",
		})
	}

	return c.Redirect("/ingredient", fiber.StatusSeeOther)
}

// renderCatalogFailure re-renders the catalog view with errors and the
// current listing.
func (h *CatalogHandler) renderCatalogFailure(c *fiber.Ctx, status int, fieldErrs map[string]string) error {
	page, err := h.catalogService.List()
	if err != nil {
		log.Printf("Error listing catalog: %v", err)
		page = &services.CatalogPage{}
	}
	return c.Status(status).JSON(fiber.Map{
		"errors":      fieldErrs,
		"ingredients": page.Ingredients,
		"categories":  page.Categories,
		"macros":      page.Macros,
	})
}

// HandleAddInventoryItemPage renders the catalog-creation flow reached
// from the inventory page, prefilled with the redirected name and
// quantity.
func (h *CatalogHandler) HandleAddInventoryItemPage(c *fiber.Ctx) error {
	page, err := h.catalogService.List()
	if err != nil {
		log.Printf("Error listing catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredient catalog",
		})
	}

	return c.JSON(fiber.Map{
		"item":        strings.ToLower(strings.TrimSpace(c.Query("ingredient_name"))),
		"quantity":    strings.TrimSpace(c.Query("quantity")),
		"ingredients": page.Ingredients,
		"categories":  page.Categories,
		"macros":      page.Macros,
	})
}

// HandleAddInventoryItem creates the catalog ingredient and stocks it
// for the submitting user.
func (h *CatalogHandler) HandleAddInventoryItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-inventory-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return h.renderCatalogFailure(c, fiber.StatusBadRequest, collectErrors(err))
	}

	if err := h.catalogService.CreateWithInventory(userID, req.Item, req.Category, req.Quantity, req.Macros); err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			return h.renderCatalogFailure(c, fieldErrorStatus(fieldErrs), fieldErrs)
		}
		log.Printf("Error creating ingredient with inventory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create ingredient",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleEditIngredient returns the prefilled edit form data for a
// catalog ingredient.
func (h *CatalogHandler) HandleEditIngredient(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	edit, err := h.catalogService.EditData(ingredientID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/ingredient", fiber.StatusSeeOther)
		}
		log.Printf("Error loading ingredient %s: %v", ingredientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load ingredient",
		})
	}

	page, err := h.catalogService.List()
	if err != nil {
		log.Printf("Error listing catalog: %v", err)
		page = &services.CatalogPage{}
	}

	return c.JSON(fiber.Map{
		"ingredient":  edit,
		"ingredients": page.Ingredients,
		"categories":  page.Categories,
		"macros":      page.Macros,
	})
}

// HandleUpdateIngredient renames/recategorizes a catalog ingredient.
// Validation failures bounce back to the edit page; a missing category
// or ingredient redirects silently to the catalog.
func (h *CatalogHandler) HandleUpdateIngredient(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	var req UpdateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-ingredient request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Redirect("/update/"+ingredientID, fiber.StatusSeeOther)
	}

	if err := h.catalogService.Update(ingredientID, req.NewName, req.NewCategory); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/ingredient", fiber.StatusSeeOther)
		}
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			return h.renderCatalogFailure(c, fieldErrorStatus(fieldErrs), fieldErrs)
		}
		log.Printf("Error updating ingredient %s: %v", ingredientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update ingredient",
		})
	}

	return c.Redirect("/ingredient", fiber.StatusSeeOther)
}

// HandleDeleteIngredient removes a catalog ingredient and everything
// referencing it.
func (h *CatalogHandler) HandleDeleteIngredient(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	if err := h.catalogService.Delete(ingredientID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/ingredient", fiber.StatusSeeOther)
		}
		log.Printf("Error deleting ingredient %s: %v", ingredientID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete ingredient",
		})
	}

	return c.Redirect("/ingredient", fiber.StatusSeeOther)
}
