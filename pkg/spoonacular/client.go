package spoonacular

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.spoonacular.com"

// Recipe is one result from the findByIngredients endpoint. Fields
// beyond these exist in the response but are not needed by the views.
type Recipe struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
	Likes                 int    `json:"likes"`
}

// Client is a thin HTTP client for the Spoonacular recipe API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a Client pointed at a custom base URL.
// Used by tests to target a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// FindByIngredients calls /recipes/findByIngredients with a
// comma-joined ingredient list and a fixed result count. Any non-200
// response is an error; there are no retries.
func (c *Client) FindByIngredients(ingredients []string, number int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(number))
	params.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/recipes/findByIngredients?" + params.Encode()
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("recipe API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe API returned status %d", resp.StatusCode)
	}

	var recipes []Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipe API response: %w", err)
	}
	return recipes, nil
}
