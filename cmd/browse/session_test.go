package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/infra/foodgramapi"
	"foodgram-client/internal/observability/logging"
	"foodgram-client/internal/usecase/recipes"
	"foodgram-client/tests/fixtures"
)

// missingRecipeID is answered with 404 by fakeAPI.
const missingRecipeID = 404

// fakeAPI serves a fixed number of recipes and records requested pages.
type fakeAPI struct {
	mu    sync.Mutex
	total int64
	pages []int
	cart  []int64
}

func (f *fakeAPI) GetRecipes(_ context.Context, params foodgramapi.ListParams) (entity.RecipePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, params.Page)
	return fixtures.Page(params.Page, f.total), nil
}

func (f *fakeAPI) AddFavorite(_ context.Context, id int64) (entity.MinifiedRecipe, error) {
	return entity.MinifiedRecipe{ID: id}, nil
}

func (f *fakeAPI) RemoveFavorite(context.Context, int64) error { return nil }

func (f *fakeAPI) AddToShoppingCart(_ context.Context, id int64) (entity.MinifiedRecipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cart = append(f.cart, id)
	return entity.MinifiedRecipe{ID: id}, nil
}

func (f *fakeAPI) RemoveFromShoppingCart(context.Context, int64) error { return nil }

func (f *fakeAPI) GetShortLink(_ context.Context, id int64) (string, error) {
	if id == missingRecipeID {
		return "", &foodgramapi.ClientError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	return "http://localhost/s/" + strings.Repeat("x", int(id)), nil
}

func (f *fakeAPI) requested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

func newTestSession(t *testing.T, total int64) (*session, *fakeAPI, *bytes.Buffer) {
	t.Helper()
	api := &fakeAPI{total: total}
	store := recipes.NewStore(api)
	ctrl := recipes.NewController(store, api, recipes.Options{Logger: logging.Discard()})
	t.Cleanup(ctrl.Close)
	require.NoError(t, ctrl.Start(context.Background()))
	ctrl.Wait()

	out := &bytes.Buffer{}
	return newSession(ctrl, store, api, out), api, out
}

func TestSession_Navigation(t *testing.T) {
	tests := []struct {
		name      string
		commands  []string
		wantPage  int
		wantPages []int
	}{
		{name: "next", commands: []string{"n"}, wantPage: 2, wantPages: []int{1, 2}},
		{name: "prev on first page stays", commands: []string{"p"}, wantPage: 1, wantPages: []int{1}},
		{name: "go to page", commands: []string{"g 3"}, wantPage: 3, wantPages: []int{1, 3}},
		{name: "go past the end clamps", commands: []string{"g 99"}, wantPage: 4, wantPages: []int{1, 4}},
		{name: "next then prev", commands: []string{"n", "p"}, wantPage: 1, wantPages: []int{1, 2, 1}},
		{name: "reload", commands: []string{"r"}, wantPage: 1, wantPages: []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, api, _ := newTestSession(t, 20)

			for _, cmd := range tt.commands {
				require.NoError(t, sess.execute(context.Background(), cmd))
			}

			assert.Equal(t, tt.wantPage, sess.store.Page())
			assert.Equal(t, tt.wantPages, api.requested())
		})
	}
}

func TestSession_RenderShowsPage(t *testing.T) {
	sess, _, out := newTestSession(t, 20)

	require.NoError(t, sess.execute(context.Background(), "n"))

	assert.Contains(t, out.String(), "Рецепты: page 2/4, 20 recipes")
	assert.Contains(t, out.String(), "[p]rev [n]ext")
	assert.Contains(t, out.String(), "[7]")
}

func TestSession_RenderEmptyList(t *testing.T) {
	sess, _, out := newTestSession(t, 0)

	sess.render()

	assert.Contains(t, out.String(), "(nothing here)")
}

func TestSession_CartUpdatesOrders(t *testing.T) {
	sess, api, out := newTestSession(t, 20)

	require.NoError(t, sess.execute(context.Background(), "cart 2"))

	assert.Equal(t, []int64{2}, api.cart)
	assert.Equal(t, 1, sess.orders)
	assert.Contains(t, out.String(), "[cart]")
}

func TestSession_Like(t *testing.T) {
	sess, _, out := newTestSession(t, 20)

	require.NoError(t, sess.execute(context.Background(), "like 3"))

	assert.True(t, sess.store.Recipes()[2].IsFavorited)
	assert.Contains(t, out.String(), "[fav]")
}

func TestSession_Link(t *testing.T) {
	sess, _, out := newTestSession(t, 20)

	require.NoError(t, sess.execute(context.Background(), "link 2"))

	assert.Contains(t, out.String(), "http://localhost/s/xx")
}

func TestSession_LinkToDeletedRecipe(t *testing.T) {
	sess, _, _ := newTestSession(t, 20)

	err := sess.execute(context.Background(), "link 404")

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Contains(t, err.Error(), "press r to reload")
}

func TestSession_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{name: "unknown command", command: "dance"},
		{name: "missing argument", command: "g"},
		{name: "not a number", command: "like seven"},
		{name: "recipe not on page", command: "cart 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _, _ := newTestSession(t, 20)

			assert.Error(t, sess.execute(context.Background(), tt.command))
		})
	}
}

func TestSession_RunStopsOnQuit(t *testing.T) {
	sess, api, out := newTestSession(t, 20)

	err := sess.run(context.Background(), strings.NewReader("n\nbogus\nq\nn\n"))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, api.requested())
	assert.Contains(t, out.String(), "error: unknown command")
}
