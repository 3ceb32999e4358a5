package recipes

import (
	"context"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/domain/entity"
)

// Page texts of the recipe list.
const (
	ListTitle       = "Рецепты"
	ListDescription = "Фудграм - Рецепты"
)

// Meta holds the document title and meta tags of the list page.
type Meta struct {
	Title       string
	Description string
	OGTitle     string
}

// Card is one recipe card. Key is the recipe ID.
type Card struct {
	Key             int64
	Recipe          entity.Recipe
	HandleLike      func(ctx context.Context) error
	HandleAddToCart func(ctx context.Context) error
	UpdateOrders    func(delta int)
}

// PaginationView drives the pager below the card list.
type PaginationView struct {
	Count        int64
	Limit        int
	Page         int
	TotalPages   int
	OnPageChange func(page int)
}

// ListView is everything a presentation layer needs to draw the list page.
type ListView struct {
	Title      string
	Meta       Meta
	Cards      []Card // nil when there is nothing to show
	Pagination PaginationView
}

// BuildView renders the store's current state. updateOrders receives +1 when
// a recipe is added to the shopping cart and -1 when it is removed; it may be nil.
func BuildView(store *Store, updateOrders func(delta int)) ListView {
	snap := store.Snapshot()

	view := ListView{
		Title: ListTitle,
		Meta: Meta{
			Title:       ListTitle,
			Description: ListDescription,
			OGTitle:     ListTitle,
		},
		Pagination: PaginationView{
			Count:        snap.Count,
			Limit:        pagination.RecipeListLimit,
			Page:         snap.Page,
			TotalPages:   pagination.CalculateTotalPages(snap.Count, pagination.RecipeListLimit),
			OnPageChange: store.SetRecipesPage,
		},
	}

	if len(snap.Recipes) == 0 {
		return view
	}

	view.Cards = make([]Card, 0, len(snap.Recipes))
	for _, r := range snap.Recipes {
		id := r.ID
		view.Cards = append(view.Cards, Card{
			Key:    id,
			Recipe: r,
			HandleLike: func(ctx context.Context) error {
				_, err := store.HandleLike(ctx, id)
				return err
			},
			HandleAddToCart: func(ctx context.Context) error {
				inCart, err := store.HandleAddToCart(ctx, id)
				if err != nil {
					return err
				}
				if updateOrders != nil {
					if inCart {
						updateOrders(1)
					} else {
						updateOrders(-1)
					}
				}
				return nil
			},
			UpdateOrders: updateOrders,
		})
	}
	return view
}
