// Package entity defines the core domain entities and validation logic for the client.
// It contains the recipe records returned by the Foodgram API together with
// the page envelope the list endpoint wraps them in.
package entity

// Recipe represents a recipe as served by the recipe list endpoint.
// The list controller treats it as opaque and only uses ID as the card key.
type Recipe struct {
	ID               int64              `json:"id"`
	Author           Author             `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// Author is the recipe author as embedded in a recipe.
type Author struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientAmount is one ingredient line of a recipe.
type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// MinifiedRecipe is the short recipe form returned by favorite and shopping cart actions.
type MinifiedRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipePage is a single fetched page of recipes.
// Count is the total number of recipes across all pages, not len(Results).
type RecipePage struct {
	Results []Recipe
	Count   int64
}

// RecipeFilter narrows the recipe list. Zero values mean "no filter".
type RecipeFilter struct {
	Author           int64 // Author user ID
	IsFavorited      bool  // Only recipes the current user favorited
	IsInShoppingCart bool  // Only recipes in the current user's shopping cart
}

// Clone returns a copy of the recipe that shares no slices with r.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append([]IngredientAmount(nil), r.Ingredients...)
	}
	return out
}
