package foodgramapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/domain/entity"
)

const opListRecipes = "list_recipes"

// ListParams selects one page of the recipe list.
type ListParams struct {
	pagination.Params
	entity.RecipeFilter

	// Fresh always issues a new request instead of joining an identical
	// one already in flight.
	Fresh bool
}

// PageParams returns ListParams for page with the fixed list limit and no filters.
func PageParams(page int) ListParams {
	return ListParams{Params: pagination.ForPage(page)}
}

// Query encodes p as the list endpoint's query string.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	p.Params.Encode(q)
	if p.Author > 0 {
		q.Set("author", strconv.FormatInt(p.Author, 10))
	}
	if p.IsFavorited {
		q.Set("is_favorited", "1")
	}
	if p.IsInShoppingCart {
		q.Set("is_in_shopping_cart", "1")
	}
	return q
}

// GetRecipes fetches one page of recipes.
//
// Concurrent calls with identical parameters share a single HTTP request,
// unless params.Fresh is set. The shared request keeps running while at
// least one caller waits for it and is canceled when the last one gives up.
func (c *Client) GetRecipes(ctx context.Context, params ListParams) (entity.RecipePage, error) {
	if params.Limit <= 0 {
		params.Limit = pagination.RecipeListLimit
	}
	if err := params.Validate(c.pageCfg); err != nil {
		return entity.RecipePage{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	query := params.Query()
	if params.Fresh {
		page, err := c.fetchPage(ctx, query)
		if err != nil {
			return entity.RecipePage{}, err
		}
		return page, nil
	}

	key := query.Encode()
	flightCtx := c.flights.join(key)
	ch := c.pages.DoChan(key, func() (interface{}, error) {
		return c.fetchPage(flightCtx, query)
	})

	select {
	case <-ctx.Done():
		c.flights.leave(key, func() { c.pages.Forget(key) })
		return entity.RecipePage{}, ctx.Err()
	case res := <-ch:
		c.flights.leave(key, nil)
		if res.Err != nil {
			return entity.RecipePage{}, res.Err
		}
		return copyPage(res.Val.(entity.RecipePage)), nil
	}
}

// flights tracks the callers waiting on each shared page request.
type flights struct {
	mu sync.Mutex
	m  map[string]*flight
}

type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// join registers a waiter for key and returns the context of its shared request.
func (f *flights) join(key string) context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.m == nil {
		f.m = make(map[string]*flight)
	}
	fl, ok := f.m[key]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		fl = &flight{ctx: ctx, cancel: cancel}
		f.m[key] = fl
	}
	fl.waiters++
	return fl.ctx
}

// leave unregisters a waiter. The last one cancels the shared request's
// context and runs onLast, still holding the lock so no caller can join a
// request that is being abandoned.
func (f *flights) leave(key string, onLast func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl, ok := f.m[key]
	if !ok {
		return
	}
	fl.waiters--
	if fl.waiters > 0 {
		return
	}
	fl.cancel()
	delete(f.m, key)
	if onLast != nil {
		onLast()
	}
}

func (c *Client) fetchPage(ctx context.Context, query url.Values) (entity.RecipePage, error) {
	var env pagination.Envelope[entity.Recipe]
	err := c.call(ctx, opListRecipes, c.listRetry, func() error {
		env = pagination.Envelope[entity.Recipe]{}
		return c.do(ctx, opListRecipes, http.MethodGet, "recipes/", query, &env)
	})
	if err != nil {
		return entity.RecipePage{}, err
	}
	return entity.RecipePage{Results: env.Results, Count: env.Count}, nil
}

// copyPage gives each singleflight caller its own slices.
func copyPage(p entity.RecipePage) entity.RecipePage {
	out := entity.RecipePage{Count: p.Count}
	if p.Results != nil {
		out.Results = make([]entity.Recipe, len(p.Results))
		for i, r := range p.Results {
			out.Results[i] = r.Clone()
		}
	}
	return out
}
