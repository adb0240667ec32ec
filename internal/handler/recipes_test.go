package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barovia-dm/tracker/internal/alchemy"
	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/handler"
)

func TestGetRecipes_PadsToFiveSlots(t *testing.T) {
	handler.InitValidator()

	svc := &stubAlchemyService{
		listRecipes: func() ([]domain.Recipe, error) {
			return []domain.Recipe{
				{
					ProductID:   1,
					ProductName: "Golondrina",
					Toxicity:    1,
					Regular: []domain.RecipeRequirement{
						{ElementName: "Cinabrio", Proportion: 2},
						{ElementName: "Azufre", Proportion: 1},
					},
					Base: domain.BaseGrasa,
				},
			}, nil
		},
	}
	h := handler.NewAlchemyHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.GetRecipes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var dtos []handler.RecipeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)

	elements := dtos[0].Elements
	require.Len(t, elements, 5)
	assert.Equal(t, "Cinabrio", elements[0].Name)
	assert.Equal(t, 2, elements[0].Proportion)
	assert.Equal(t, "Azufre", elements[1].Name)
	// Two padding slots between the regular requirements and the base
	assert.Empty(t, elements[2].Name)
	assert.Empty(t, elements[3].Name)
	assert.Equal(t, "Grasa", elements[4].Name)
	assert.Equal(t, 1, elements[4].Proportion)
}

func TestSaveRecipe_SplitsBaseFromRegular(t *testing.T) {
	handler.InitValidator()

	var got alchemy.SaveRecipeInput
	svc := &stubAlchemyService{
		saveRecipe: func(input alchemy.SaveRecipeInput) (int, error) {
			got = input
			return 42, nil
		},
	}
	h := handler.NewAlchemyHandler(svc)

	rec := postJSON(t, h.SaveRecipe, map[string]interface{}{
		"name":        "Golondrina",
		"description": "Restaura vitalidad",
		"elements": []map[string]interface{}{
			{"name": "Cinabrio", "proportion": 2},
			{"name": "", "proportion": 0},
			{"name": "Grasa", "proportion": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")

	assert.Equal(t, "Golondrina", got.Name)
	assert.Equal(t, "Grasa", got.Base)
	require.Len(t, got.Regular, 1)
	assert.Equal(t, "Cinabrio", got.Regular[0].ElementName)
}

func TestSaveRecipe_Validation(t *testing.T) {
	handler.InitValidator()

	svc := &stubAlchemyService{
		saveRecipe: func(input alchemy.SaveRecipeInput) (int, error) {
			t.Fatal("service should not be called")
			return 0, nil
		},
	}
	h := handler.NewAlchemyHandler(svc)

	// Missing name
	rec := postJSON(t, h.SaveRecipe, map[string]interface{}{
		"elements": []map[string]interface{}{{"name": "Cinabrio", "proportion": 2}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// More than five slots
	rec = postJSON(t, h.SaveRecipe, map[string]interface{}{
		"name": "Golondrina",
		"elements": []map[string]interface{}{
			{"name": "a", "proportion": 1}, {"name": "b", "proportion": 1},
			{"name": "c", "proportion": 1}, {"name": "d", "proportion": 1},
			{"name": "e", "proportion": 1}, {"name": "f", "proportion": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed JSON
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.SaveRecipe(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		body           interface{}
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "By id",
			body:           map[string]interface{}{"product_id": 7},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "By name",
			body:           map[string]interface{}{"name": "Golondrina"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Absent product is 404",
			body:           map[string]interface{}{"product_id": 404},
			serviceErr:     domain.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Neither id nor name",
			body:           map[string]interface{}{},
			serviceErr:     domain.ErrInvalidPayload,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAlchemyService{
				deleteRecipeByRef: func(productID int, name string) (int, error) {
					if tt.serviceErr != nil {
						return 0, tt.serviceErr
					}
					if productID == 0 {
						return 9, nil
					}
					return productID, nil
				},
			}
			h := handler.NewAlchemyHandler(svc)

			rec := postJSON(t, h.DeleteRecipe, tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp handler.OkResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.True(t, resp.Ok)
				assert.Positive(t, resp.ProductID)
			}
		})
	}
}
