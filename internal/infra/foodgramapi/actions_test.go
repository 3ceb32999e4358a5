package foodgramapi

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/resilience/retry"
)

func TestAddFavorite(t *testing.T) {
	// Arrange
	var method, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7, "name": "Плов", "image": "http://localhost/media/7.png", "cooking_time": 90}`))
	})

	// Act
	got, err := client.AddFavorite(context.Background(), 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/recipes/7/favorite/", path)
	assert.Equal(t, entity.MinifiedRecipe{ID: 7, Name: "Плов", Image: "http://localhost/media/7.png", CookingTime: 90}, got)
}

func TestRelationEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
	}{
		{
			name:       "remove favorite",
			call:       func(c *Client) error { return c.RemoveFavorite(context.Background(), 3) },
			wantMethod: http.MethodDelete,
			wantPath:   "/api/recipes/3/favorite/",
		},
		{
			name: "add to shopping cart",
			call: func(c *Client) error {
				_, err := c.AddToShoppingCart(context.Background(), 4)
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/recipes/4/shopping_cart/",
		},
		{
			name:       "remove from shopping cart",
			call:       func(c *Client) error { return c.RemoveFromShoppingCart(context.Background(), 5) },
			wantMethod: http.MethodDelete,
			wantPath:   "/api/recipes/5/shopping_cart/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var method, path string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				method, path = r.Method, r.URL.Path
				if r.Method == http.MethodDelete {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id": 4}`))
			})

			require.NoError(t, tt.call(client))
			assert.Equal(t, tt.wantMethod, method)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestAddToShoppingCart_AlreadyAdded(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Рецепт уже добавлен"}`))
	})

	_, err := client.AddToShoppingCart(context.Background(), 4)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "Рецепт уже добавлен", clientErr.Message)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetShortLink(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/9/get-link/", r.URL.Path)
		_, _ = w.Write([]byte(`{"short-link": "http://localhost/s/3d0"}`))
	})

	link, err := client.GetShortLink(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost/s/3d0", link)
}

func TestActions_RejectInvalidID(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})
	ctx := context.Background()

	_, err := client.AddFavorite(ctx, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.ErrorIs(t, client.RemoveFromShoppingCart(ctx, -1), entity.ErrInvalidInput)
	_, err = client.GetShortLink(ctx, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.Equal(t, int32(0), hits.Load())
}

func TestMutations_NotRetriedAfterServerError(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{
			name: "add favorite",
			call: func(c *Client) error {
				_, err := c.AddFavorite(context.Background(), 7)
				return err
			},
		},
		{
			name: "remove from shopping cart",
			call: func(c *Client) error { return c.RemoveFromShoppingCart(context.Background(), 7) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var hits atomic.Int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(http.StatusBadGateway)
			})

			// Act
			err := tt.call(client)

			// Assert
			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, http.StatusBadGateway, serverErr.StatusCode)
			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestGetShortLink_RetriesServerError(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"short-link": "http://localhost/s/1"}`))
	})

	link, err := client.GetShortLink(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost/s/1", link)
	assert.Equal(t, int32(2), hits.Load())
}

func TestMutationError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "rate limited", err: &RateLimitError{Delay: time.Second}, retryable: true},
		{name: "connection refused", err: fmt.Errorf("add_favorite: %w", syscall.ECONNREFUSED), retryable: true},
		{name: "server error", err: &ServerError{StatusCode: 500}, retryable: false},
		{name: "connection reset", err: syscall.ECONNRESET, retryable: false},
		{name: "client error", err: &ClientError{StatusCode: 400}, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mutationError(tt.err)

			assert.Equal(t, tt.retryable, retry.IsRetryable(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.NoError(t, mutationError(nil))
}
