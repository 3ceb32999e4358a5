package recipes

import "errors"

// Sentinel errors for recipe list operations.
var (
	// ErrFetchFailed wraps any failure of a recipe page request.
	// The store is left untouched when it is returned.
	ErrFetchFailed = errors.New("recipe page fetch failed")

	// ErrRecipeNotInList indicates an action on a recipe that is not on the current page.
	ErrRecipeNotInList = errors.New("recipe is not in the current list")

	// ErrControllerClosed is returned by Start after Close.
	ErrControllerClosed = errors.New("recipe list controller closed")
)
