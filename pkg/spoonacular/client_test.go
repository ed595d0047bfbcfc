package spoonacular_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry/pkg/spoonacular"

	"github.com/stretchr/testify/assert"
)

func TestClient_FindByIngredients(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/findByIngredients", r.URL.Path)
		gotQuery = map[string]string{
			"ingredients": r.URL.Query().Get("ingredients"),
			"number":      r.URL.Query().Get("number"),
			"apiKey":      r.URL.Query().Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":101,"title":"Apple Pie","image":"https://img.test/101.jpg","usedIngredientCount":1,"missedIngredientCount":4,"likes":12}]`)
	}))
	defer server.Close()

	client := spoonacular.NewClientWithBaseURL("test-key", server.URL)
	recipes, err := client.FindByIngredients([]string{"apples", "beef jerky"}, 5)

	assert.NoError(t, err)
	assert.Equal(t, "apples,beef jerky", gotQuery["ingredients"])
	assert.Equal(t, "5", gotQuery["number"])
	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Len(t, recipes, 1)
	assert.Equal(t, 101, recipes[0].ID)
	assert.Equal(t, "Apple Pie", recipes[0].Title)
	assert.Equal(t, 4, recipes[0].MissedIngredientCount)
}

func TestClient_FindByIngredients_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := spoonacular.NewClientWithBaseURL("test-key", server.URL)
	recipes, err := client.FindByIngredients([]string{"apples"}, 5)

	assert.Error(t, err)
	assert.Nil(t, recipes)
	assert.Contains(t, err.Error(), "status 402")
}

func TestClient_FindByIngredients_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer server.Close()

	client := spoonacular.NewClientWithBaseURL("test-key", server.URL)
	_, err := client.FindByIngredients([]string{"apples"}, 5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
