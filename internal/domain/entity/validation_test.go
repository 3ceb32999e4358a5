package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid https URL", url: "https://foodgram.example.com", wantErr: false},
		{name: "local http URL", url: "http://localhost:8000", wantErr: false},
		{name: "private address allowed", url: "http://192.168.1.10:8000", wantErr: false},
		{name: "empty URL", url: "", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com", wantErr: true},
		{name: "missing host", url: "http://", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", 2048), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecipeID(t *testing.T) {
	assert.NoError(t, ValidateRecipeID(1))
	assert.ErrorIs(t, ValidateRecipeID(0), ErrInvalidInput)
	assert.ErrorIs(t, ValidateRecipeID(-5), ErrInvalidInput)
}

func TestRecipe_CloneDoesNotShareIngredients(t *testing.T) {
	orig := Recipe{ID: 1, Ingredients: []IngredientAmount{{ID: 1, Amount: 10}}}
	cp := orig.Clone()
	cp.Ingredients[0].Amount = 99

	assert.Equal(t, 10, orig.Ingredients[0].Amount)
}
