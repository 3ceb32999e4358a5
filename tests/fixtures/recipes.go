// Package fixtures provides reusable test data for recipe list tests.
// It builds recipes and DRF page envelopes shaped like real Foodgram API
// responses so tests across packages share the same content.
package fixtures

import (
	"encoding/json"
	"fmt"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/domain/entity"
)

var dishNames = []string{
	"Борщ",
	"Сырники",
	"Пельмени",
	"Оливье",
	"Блины",
	"Шакшука",
	"Плов",
	"Окрошка",
}

// RecipeOptions configures a generated recipe.
type RecipeOptions struct {
	// ID is the recipe ID; must be positive
	ID int64

	// AuthorID defaults to 1
	AuthorID int64

	// IsFavorited / IsInShoppingCart set the per-user flags
	IsFavorited      bool
	IsInShoppingCart bool
}

// Recipe returns a valid recipe for opts.
//
// Example:
//
//	r := fixtures.Recipe(fixtures.RecipeOptions{ID: 7, IsFavorited: true})
func Recipe(opts RecipeOptions) entity.Recipe {
	authorID := opts.AuthorID
	if authorID == 0 {
		authorID = 1
	}
	name := dishNames[int(opts.ID)%len(dishNames)]
	return entity.Recipe{
		ID: opts.ID,
		Author: entity.Author{
			ID:        authorID,
			Email:     fmt.Sprintf("cook%d@foodgram.example", authorID),
			Username:  fmt.Sprintf("cook%d", authorID),
			FirstName: "Вася",
			LastName:  "Пупкин",
		},
		Ingredients: []entity.IngredientAmount{
			{ID: 1, Name: "соль", MeasurementUnit: "г", Amount: 5},
			{ID: 2, Name: "вода", MeasurementUnit: "мл", Amount: 250},
		},
		IsFavorited:      opts.IsFavorited,
		IsInShoppingCart: opts.IsInShoppingCart,
		Name:             fmt.Sprintf("%s №%d", name, opts.ID),
		Image:            fmt.Sprintf("http://localhost/media/recipes/images/%d.png", opts.ID),
		Text:             "Смешать, довести до кипения, подавать горячим.",
		CookingTime:      30,
	}
}

// Recipes returns n recipes with IDs starting at firstID.
func Recipes(firstID int64, n int) []entity.Recipe {
	out := make([]entity.Recipe, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Recipe(RecipeOptions{ID: firstID + int64(i)}))
	}
	return out
}

// Page returns the recipes of page (1-based) out of total recipes, using
// the fixed list limit.
func Page(page int, total int64) entity.RecipePage {
	limit := pagination.RecipeListLimit
	first := int64((page-1)*limit) + 1
	n := int(total - first + 1)
	if n > limit {
		n = limit
	}
	if n < 0 {
		n = 0
	}
	return entity.RecipePage{Results: Recipes(first, n), Count: total}
}

// EnvelopeJSON renders page as the list endpoint's JSON body.
// next and previous are left null.
func EnvelopeJSON(page entity.RecipePage) []byte {
	results := page.Results
	if results == nil {
		results = []entity.Recipe{}
	}
	body, err := json.Marshal(pagination.Envelope[entity.Recipe]{
		Count:   page.Count,
		Results: results,
	})
	if err != nil {
		panic(err)
	}
	return body
}
