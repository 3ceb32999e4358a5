// Package recipes implements the recipe list: a store holding the current
// page of recipes and a controller keeping it in sync with the selected page.
package recipes

import (
	"context"
	"fmt"
	"sync"

	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/observability/metrics"
)

// ActionAPI is the part of the API the store's like and cart actions need.
type ActionAPI interface {
	AddFavorite(ctx context.Context, id int64) (entity.MinifiedRecipe, error)
	RemoveFavorite(ctx context.Context, id int64) error
	AddToShoppingCart(ctx context.Context, id int64) (entity.MinifiedRecipe, error)
	RemoveFromShoppingCart(ctx context.Context, id int64) error
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Recipes []entity.Recipe
	Count   int64
	Page    int
}

// Store holds the shared recipe list state.
// Subscribers are notified when the selected page changes.
type Store struct {
	api ActionAPI

	mu      sync.RWMutex
	recipes []entity.Recipe
	count   int64
	page    int
	subs    map[uint64]func(page int)
	nextSub uint64
}

// NewStore creates a store on page 1 with an empty list.
// api may be nil when like and cart actions are not used.
func NewStore(api ActionAPI) *Store {
	return &Store{
		api:  api,
		page: 1,
		subs: make(map[uint64]func(page int)),
	}
}

// Recipes returns a copy of the current list.
func (s *Store) Recipes() []entity.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecipes(s.recipes)
}

// Count returns the total number of recipes across all pages.
func (s *Store) Count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Page returns the selected page.
func (s *Store) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Snapshot returns recipes, count and page read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Recipes: cloneRecipes(s.recipes), Count: s.count, Page: s.page}
}

// SetRecipes replaces the list.
func (s *Store) SetRecipes(recipes []entity.Recipe) {
	s.mu.Lock()
	s.recipes = cloneRecipes(recipes)
	s.mu.Unlock()
}

// SetRecipesCount replaces the total count.
func (s *Store) SetRecipesCount(count int64) {
	s.mu.Lock()
	s.count = count
	s.mu.Unlock()
}

// SetRecipesPage selects page. Subscribers are notified only when the page
// actually changes. The value is stored as given.
func (s *Store) SetRecipesPage(page int) {
	s.mu.Lock()
	if s.page == page {
		s.mu.Unlock()
		return
	}
	s.page = page
	subs := make([]func(int), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(page)
	}
}

// Subscribe registers fn for page changes. The returned func unsubscribes
// and is safe to call more than once.
func (s *Store) Subscribe(fn func(page int)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Reset restores the defaults without notifying subscribers.
func (s *Store) Reset() {
	s.mu.Lock()
	s.recipes = nil
	s.count = 0
	s.page = 1
	s.mu.Unlock()
}

// replaceIfPage replaces recipes and count only while page is still selected.
func (s *Store) replaceIfPage(page int, recipes []entity.Recipe, count int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page != page {
		return false
	}
	s.recipes = cloneRecipes(recipes)
	s.count = count
	return true
}

// HandleLike toggles the favorite flag of the recipe with id.
// It returns the new flag value.
func (s *Store) HandleLike(ctx context.Context, id int64) (bool, error) {
	favorited, err := s.flag(id, func(r entity.Recipe) bool { return r.IsFavorited })
	if err != nil {
		return false, err
	}

	if favorited {
		err = s.api.RemoveFavorite(ctx, id)
	} else {
		_, err = s.api.AddFavorite(ctx, id)
	}
	metrics.RecordAction("like", err == nil)
	if err != nil {
		return favorited, fmt.Errorf("toggle favorite %d: %w", id, err)
	}

	s.update(id, func(r *entity.Recipe) { r.IsFavorited = !favorited })
	return !favorited, nil
}

// HandleAddToCart toggles the shopping cart flag of the recipe with id.
// It returns the new flag value.
func (s *Store) HandleAddToCart(ctx context.Context, id int64) (bool, error) {
	inCart, err := s.flag(id, func(r entity.Recipe) bool { return r.IsInShoppingCart })
	if err != nil {
		return false, err
	}

	if inCart {
		err = s.api.RemoveFromShoppingCart(ctx, id)
	} else {
		_, err = s.api.AddToShoppingCart(ctx, id)
	}
	metrics.RecordAction("cart", err == nil)
	if err != nil {
		return inCart, fmt.Errorf("toggle shopping cart %d: %w", id, err)
	}

	s.update(id, func(r *entity.Recipe) { r.IsInShoppingCart = !inCart })
	return !inCart, nil
}

func (s *Store) flag(id int64, get func(entity.Recipe) bool) (bool, error) {
	if s.api == nil {
		return false, fmt.Errorf("recipe %d: no action api configured", id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return get(r), nil
		}
	}
	return false, fmt.Errorf("recipe %d: %w", id, ErrRecipeNotInList)
}

// update applies fn to the recipe with id if it is still listed.
func (s *Store) update(id int64, fn func(*entity.Recipe)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			fn(&s.recipes[i])
			return
		}
	}
}

func cloneRecipes(in []entity.Recipe) []entity.Recipe {
	if in == nil {
		return nil
	}
	out := make([]entity.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
