package foodgramapi

import (
	"context"
	"fmt"
	"net/http"

	"foodgram-client/internal/domain/entity"
)

const (
	opAddFavorite    = "add_favorite"
	opRemoveFavorite = "remove_favorite"
	opAddToCart      = "add_to_cart"
	opRemoveFromCart = "remove_from_cart"
	opShortLink      = "short_link"
)

// AddFavorite adds the recipe to the current user's favorites.
func (c *Client) AddFavorite(ctx context.Context, id int64) (entity.MinifiedRecipe, error) {
	return c.addRelation(ctx, opAddFavorite, id, "favorite")
}

// RemoveFavorite removes the recipe from the current user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	return c.removeRelation(ctx, opRemoveFavorite, id, "favorite")
}

// AddToShoppingCart adds the recipe to the current user's shopping cart.
func (c *Client) AddToShoppingCart(ctx context.Context, id int64) (entity.MinifiedRecipe, error) {
	return c.addRelation(ctx, opAddToCart, id, "shopping_cart")
}

// RemoveFromShoppingCart removes the recipe from the current user's shopping cart.
func (c *Client) RemoveFromShoppingCart(ctx context.Context, id int64) error {
	return c.removeRelation(ctx, opRemoveFromCart, id, "shopping_cart")
}

// GetShortLink returns the short link the backend issues for a recipe.
func (c *Client) GetShortLink(ctx context.Context, id int64) (string, error) {
	if err := entity.ValidateRecipeID(id); err != nil {
		return "", err
	}
	var out struct {
		ShortLink string `json:"short-link"`
	}
	err := c.call(ctx, opShortLink, c.actionRetry, func() error {
		return c.do(ctx, opShortLink, http.MethodGet, fmt.Sprintf("recipes/%d/get-link/", id), nil, &out)
	})
	if err != nil {
		return "", err
	}
	return out.ShortLink, nil
}

func (c *Client) addRelation(ctx context.Context, operation string, id int64, relation string) (entity.MinifiedRecipe, error) {
	if err := entity.ValidateRecipeID(id); err != nil {
		return entity.MinifiedRecipe{}, err
	}
	var out entity.MinifiedRecipe
	err := c.call(ctx, operation, c.actionRetry, func() error {
		return mutationError(c.do(ctx, operation, http.MethodPost, fmt.Sprintf("recipes/%d/%s/", id, relation), nil, &out))
	})
	if err != nil {
		return entity.MinifiedRecipe{}, err
	}
	return out, nil
}

func (c *Client) removeRelation(ctx context.Context, operation string, id int64, relation string) error {
	if err := entity.ValidateRecipeID(id); err != nil {
		return err
	}
	return c.call(ctx, operation, c.actionRetry, func() error {
		return mutationError(c.do(ctx, operation, http.MethodDelete, fmt.Sprintf("recipes/%d/%s/", id, relation), nil, nil))
	})
}
