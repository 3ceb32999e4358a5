package recipes

import (
	"context"
	"errors"
	"sync"

	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/infra/foodgramapi"
)

type result struct {
	page entity.RecipePage
	err  error
}

// fakeLister answers page requests from a map, or blocks on a per-page gate
// when one is registered. Gated requests ignore cancellation so tests can
// resolve them in any order.
type fakeLister struct {
	mu     sync.Mutex
	calls  []foodgramapi.ListParams
	pages  map[int]entity.RecipePage
	errs   map[int]error
	gates  map[int]chan result
	called chan int
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		pages:  make(map[int]entity.RecipePage),
		errs:   make(map[int]error),
		gates:  make(map[int]chan result),
		called: make(chan int, 16),
	}
}

func (f *fakeLister) gate(page int) chan result {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan result, 1)
	f.gates[page] = ch
	return ch
}

func (f *fakeLister) GetRecipes(ctx context.Context, params foodgramapi.ListParams) (entity.RecipePage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	gate := f.gates[params.Page]
	page, err := f.pages[params.Page], f.errs[params.Page]
	f.mu.Unlock()

	f.called <- params.Page

	if gate != nil {
		r := <-gate
		return r.page, r.err
	}
	return page, err
}

func (f *fakeLister) requestedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, 0, len(f.calls))
	for _, p := range f.calls {
		out = append(out, p.Page)
	}
	return out
}

var errBackendDown = errors.New("backend down")

// fakeActions records like and cart calls.
type fakeActions struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeActions) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeActions) AddFavorite(_ context.Context, id int64) (entity.MinifiedRecipe, error) {
	return entity.MinifiedRecipe{ID: id}, f.record("add_favorite")
}

func (f *fakeActions) RemoveFavorite(_ context.Context, _ int64) error {
	return f.record("remove_favorite")
}

func (f *fakeActions) AddToShoppingCart(_ context.Context, id int64) (entity.MinifiedRecipe, error) {
	return entity.MinifiedRecipe{ID: id}, f.record("add_to_cart")
}

func (f *fakeActions) RemoveFromShoppingCart(_ context.Context, _ int64) error {
	return f.record("remove_from_cart")
}

func (f *fakeActions) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
