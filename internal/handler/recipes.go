package handler

import (
	"errors"
	"net/http"

	"github.com/barovia-dm/tracker/internal/alchemy"
	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/metrics"
)

// recipeSlots is the fixed width of the recipe wire format: four requirement
// slots plus the base slot. The stored model is narrower; padding exists only
// on the wire.
const recipeSlots = 5

// RecipeDTO is one recipe as serialized to clients: elements always holds
// recipeSlots entries, unused slots empty, the base substance last.
type RecipeDTO struct {
	ProductID   int                `json:"product_id"`
	ProductName string             `json:"product_name"`
	Description string             `json:"description,omitempty"`
	Toxicity    int                `json:"toxicity"`
	Elements    []RequirementEntry `json:"elements"`
}

// SaveRecipeRequest registers a new recipe. A slot naming a recognized base
// substance becomes the base; everything else is a regular requirement.
type SaveRecipeRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	Elements    []RequirementEntry `json:"elements" validate:"required,min=1,max=5"`
}

// SaveRecipeResponse returns the id of the created product
type SaveRecipeResponse struct {
	ProductID int `json:"product_id"`
}

// DeleteRecipeRequest identifies the recipe to remove, by id or by name
type DeleteRecipeRequest struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
}

func recipeToDTO(r domain.Recipe) RecipeDTO {
	elements := make([]RequirementEntry, 0, recipeSlots)
	for _, req := range r.Regular {
		elements = append(elements, RequirementEntry{Name: req.ElementName, Proportion: req.Proportion})
	}
	for len(elements) < recipeSlots-1 {
		elements = append(elements, RequirementEntry{})
	}
	if r.Base != "" {
		elements = append(elements, RequirementEntry{Name: string(r.Base), Proportion: 1})
	} else {
		elements = append(elements, RequirementEntry{})
	}

	return RecipeDTO{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Description: r.Description,
		Toxicity:    r.Toxicity,
		Elements:    elements,
	}
}

// GetRecipes handles GET /alchemy/recipes
func (h *AlchemyHandler) GetRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListRecipes(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRecipesFailed, err)
		return
	}

	dtos := make([]RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		dtos = append(dtos, recipeToDTO(recipe))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// SaveRecipe handles POST /alchemy/recipes
func (h *AlchemyHandler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	var req SaveRecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save recipe"); err != nil {
		return
	}

	input := alchemy.SaveRecipeInput{
		Name:        req.Name,
		Description: req.Description,
	}
	for _, e := range req.Elements {
		// Padding slots arrive with an empty name and carry nothing.
		if e.Name == "" {
			continue
		}
		if domain.IsRecognizedBase(e.Name) {
			input.Base = e.Name
			continue
		}
		input.Regular = append(input.Regular, domain.RecipeRequirement{
			ElementName: e.Name,
			Proportion:  e.Proportion,
		})
	}

	productID, err := h.svc.SaveRecipe(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveRecipeFailed, err)
		return
	}

	metrics.RecipesSaved.Inc()
	respondJSON(w, http.StatusCreated, SaveRecipeResponse{ProductID: productID})
}

// DeleteRecipe handles DELETE /alchemy/recipes
func (h *AlchemyHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	var req DeleteRecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete recipe"); err != nil {
		return
	}

	productID, err := h.svc.DeleteRecipe(r.Context(), req.ProductID, req.Name)
	if err != nil {
		// A missing product on delete is a 404, unlike the craft path where
		// the same error means a bad payload.
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondServiceError(w, r, ErrMsgDeleteRecipeFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, OkResponse{Ok: true, ProductID: productID})
}
