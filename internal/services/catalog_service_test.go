package services_test

import (
	"fmt"
	"testing"

	"pantry/internal/models"
	"pantry/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_List(t *testing.T) {
	mockCat := new(MockCatalogRepository)
	mockInv := new(MockInventoryRepository)
	service := services.NewCatalogService(mockCat, mockInv)

	ingredients := []models.Ingredient{
		{ID: "ing-1", Name: "milk", Category: models.Category{Name: "Dairy"}},
		{ID: "ing-2", Name: "apples", Category: models.Category{Name: "Produce"}},
	}
	mockCat.On("ListIngredients").Return(ingredients, nil).Once()
	mockCat.On("ListCategories").Return([]models.Category{{ID: "c-1", Name: "Dairy"}, {ID: "c-2", Name: "Produce"}}, nil).Once()
	mockCat.On("ListMacronutrients").Return([]models.Macronutrient{{ID: "m-1", Name: "Protein"}}, nil).Once()

	page, err := service.List()
	assert.NoError(t, err)
	assert.Len(t, page.Ingredients, 2)
	assert.Equal(t, "milk", page.Ingredients[0].Ingredient)
	assert.Equal(t, "Dairy", page.Ingredients[0].Category)
	assert.Equal(t, []string{"Dairy", "Produce"}, page.Categories)
	assert.Equal(t, []services.MacroChoice{{ID: "m-1", Name: "Protein"}}, page.Macros)
	mockCat.AssertExpectations(t)
}

func TestCatalogService_Create(t *testing.T) {
	mockCat := new(MockCatalogRepository)
	mockInv := new(MockInventoryRepository)
	service := services.NewCatalogService(mockCat, mockInv)

	// Unknown category
	mockCat.On("GetCategoryByName", "Nonsense").Return(nil, fmt.Errorf("category Nonsense not found")).Once()
	_, err := service.Create("apples", "Nonsense", nil)
	var fieldErrs services.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "You must choose a valid category.", fieldErrs["category"])
	mockCat.AssertNotCalled(t, "CreateIngredient", mock.Anything, mock.Anything)

	// Duplicate name in the same category
	category := &models.Category{ID: "cat-1", Name: "Produce"}
	mockCat.On("GetCategoryByName", "Produce").Return(category, nil).Once()
	mockCat.On("GetIngredientByName", "apples").Return(&models.Ingredient{ID: "ing-1"}, nil).Once()
	_, err = service.Create("apples", "Produce", nil)
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs["item"], "'apples' already exists in the database.")

	// Names are unique across the whole catalog: the same name under a
	// different category is rejected too, not left to the DB constraint
	mockCat.On("GetCategoryByName", "Frozen").Return(&models.Category{ID: "cat-3", Name: "Frozen"}, nil).Once()
	mockCat.On("GetIngredientByName", "apples").Return(&models.Ingredient{ID: "ing-1", CategoryID: "cat-1"}, nil).Once()
	_, err = service.Create("apples", "Frozen", nil)
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs["item"], "'apples' already exists in the database.")
	mockCat.AssertNotCalled(t, "CreateIngredient", mock.Anything, mock.Anything)

	// Novel name succeeds, normalized
	mockCat.On("GetCategoryByName", "Pantry").Return(&models.Category{ID: "cat-2", Name: "Pantry"}, nil).Once()
	mockCat.On("GetIngredientByName", "beef jerky").Return(nil, fmt.Errorf("not found")).Once()
	mockCat.On("CreateIngredient", mock.MatchedBy(func(ing *models.Ingredient) bool {
		return ing.Name == "beef jerky" && ing.CategoryID == "cat-2"
	}), []string{"m-1"}).Return(nil).Once()

	ingredient, err := service.Create(" Beef Jerky ", "Pantry", []string{"m-1"})
	assert.NoError(t, err)
	assert.Equal(t, "beef jerky", ingredient.Name)
	mockCat.AssertExpectations(t)
}

func TestCatalogService_CreateWithInventory(t *testing.T) {
	mockCat := new(MockCatalogRepository)
	mockInv := new(MockInventoryRepository)
	service := services.NewCatalogService(mockCat, mockInv)

	mockCat.On("GetCategoryByName", "Pantry").Return(&models.Category{ID: "cat-2", Name: "Pantry"}, nil)
	mockCat.On("GetIngredientByName", "beef jerky").Return(nil, fmt.Errorf("not found"))
	mockCat.On("CreateIngredient", mock.AnythingOfType("*models.Ingredient"), []string{"m-1"}).Return(nil)

	// New ingredient is stocked for the submitting user
	mockInv.On("GetByUserAndIngredient", "user-1", mock.Anything).Return(nil, fmt.Errorf("no inventory row")).Once()
	mockInv.On("Create", mock.MatchedBy(func(item *models.Inventory) bool {
		return item.UserID == "user-1" && item.CategoryID == "cat-2" && item.Quantity == "2"
	})).Return(nil).Once()

	err := service.CreateWithInventory("user-1", "beef jerky", "Pantry", "2", []string{"m-1"})
	assert.NoError(t, err)
	mockInv.AssertExpectations(t)

	// An existing inventory row is left alone
	mockInv.On("GetByUserAndIngredient", "user-1", mock.Anything).Return(&models.Inventory{ID: "inv-1"}, nil).Once()
	err = service.CreateWithInventory("user-1", "beef jerky", "Pantry", "2", []string{"m-1"})
	assert.NoError(t, err)
	mockInv.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_Update(t *testing.T) {
	mockCat := new(MockCatalogRepository)
	mockInv := new(MockInventoryRepository)
	service := services.NewCatalogService(mockCat, mockInv)

	// Invalid category: silent redirect case
	mockCat.On("GetCategoryByName", "Nonsense").Return(nil, fmt.Errorf("not found")).Once()
	err := service.Update("ing-1", "apples", "Nonsense")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Missing ingredient: silent redirect case
	mockCat.On("GetCategoryByName", "Produce").Return(&models.Category{ID: "cat-1", Name: "Produce"}, nil)
	mockCat.On("GetIngredientByID", "ing-9").Return(nil, fmt.Errorf("not found")).Once()
	err = service.Update("ing-9", "apples", "Produce")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Rename collision is a field error, same as the inventory path
	current := &models.Ingredient{ID: "ing-1", Name: "apples"}
	mockCat.On("GetIngredientByID", "ing-1").Return(current, nil)
	mockCat.On("FindIngredientExcluding", "pears", "ing-1").Return(&models.Ingredient{ID: "ing-2"}, nil).Once()
	err = service.Update("ing-1", "Pears", "Produce")
	var fieldErrs services.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs["new_name"], "already exists")

	// Successful rename/recategorization
	mockCat.On("FindIngredientExcluding", "green apples", "ing-1").Return(nil, fmt.Errorf("no other ingredient")).Once()
	mockCat.On("UpdateIngredient", "ing-1", "green apples", "cat-1").Return(nil).Once()
	err = service.Update("ing-1", " Green Apples ", "Produce")
	assert.NoError(t, err)
	mockCat.AssertExpectations(t)
}

func TestCatalogService_Delete(t *testing.T) {
	mockCat := new(MockCatalogRepository)
	mockInv := new(MockInventoryRepository)
	service := services.NewCatalogService(mockCat, mockInv)

	mockCat.On("GetIngredientByID", "ing-1").Return(&models.Ingredient{ID: "ing-1", Name: "apples"}, nil).Once()
	mockCat.On("DeleteIngredient", "ing-1").Return(nil).Once()
	assert.NoError(t, service.Delete("ing-1"))

	// A missing ingredient is the sentinel, so the handler can redirect
	mockCat.On("GetIngredientByID", "ing-9").Return(nil, fmt.Errorf("ingredient with ID ing-9 not found")).Once()
	err := service.Delete("ing-9")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockCat.AssertNotCalled(t, "DeleteIngredient", "ing-9")
	mockCat.AssertExpectations(t)
}
