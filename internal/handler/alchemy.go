package handler

import (
	"net/http"

	"github.com/barovia-dm/tracker/internal/alchemy"
	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/metrics"
)

// UpdateElementRequest sets an absolute on-hand quantity for one element
type UpdateElementRequest struct {
	ID       int  `json:"id" validate:"required,gt=0"`
	Quantity *int `json:"quantity" validate:"required"`
}

// UpdateElementResponse reports how many rows the direct-set touched
type UpdateElementResponse struct {
	Affected int `json:"affected"`
}

// YieldEntry is one element of an extraction mapping payload
type YieldEntry struct {
	Name  string `json:"name"`
	Yield int    `json:"yield"`
}

// RegisterMaterialRequest registers or replaces the extraction mapping of a material
type RegisterMaterialRequest struct {
	Material string       `json:"material" validate:"required"`
	Elements []YieldEntry `json:"elements" validate:"required,min=1"`
}

// RequirementEntry is one element slot of a recipe payload
type RequirementEntry struct {
	Name       string `json:"name"`
	Proportion int    `json:"proportion"`
}

// CraftRecipe is the recipe part of a craft request
type CraftRecipe struct {
	ProductName string             `json:"product_name" validate:"required"`
	Elements    []RequirementEntry `json:"elements" validate:"required,min=1"`
}

// CraftRequest asks to craft one unit of a product for a character
type CraftRequest struct {
	Recipe    CraftRecipe `json:"recipe" validate:"required"`
	CrafterID int         `json:"crafter_character_id" validate:"required,gt=0"`
}

// ExtractRequest converts material stock into element stock
type ExtractRequest struct {
	MaterialID int `json:"material_id" validate:"required,gt=0"`
	Quantity   int `json:"quantity" validate:"required,gt=0"`
}

// ExtractResponse reports a completed extraction
type ExtractResponse struct {
	Ok         bool `json:"ok"`
	MaterialID int  `json:"material_id"`
	Quantity   int  `json:"quantity"`
}

// AlchemyHandler handles alchemy HTTP requests
type AlchemyHandler struct {
	svc alchemy.Service
}

// NewAlchemyHandler creates a new alchemy handler
func NewAlchemyHandler(svc alchemy.Service) *AlchemyHandler {
	return &AlchemyHandler{svc: svc}
}

// GetElements handles GET /alchemy/elements
func (h *AlchemyHandler) GetElements(w http.ResponseWriter, r *http.Request) {
	elements, err := h.svc.GetElements(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetElementsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, elements)
}

// UpdateElement handles POST /alchemy/elements (absolute direct-set)
func (h *AlchemyHandler) UpdateElement(w http.ResponseWriter, r *http.Request) {
	var req UpdateElementRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update element"); err != nil {
		return
	}

	if err := h.svc.SetElementQuantity(r.Context(), req.ID, *req.Quantity); err != nil {
		respondServiceError(w, r, ErrMsgUpdateElementFail, err)
		return
	}

	respondJSON(w, http.StatusOK, UpdateElementResponse{Affected: 1})
}

// GetMaterials handles GET /alchemy/materials
func (h *AlchemyHandler) GetMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.svc.GetMaterialMap(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetMaterialsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, materials)
}

// RegisterMaterial handles POST /alchemy/materials
func (h *AlchemyHandler) RegisterMaterial(w http.ResponseWriter, r *http.Request) {
	var req RegisterMaterialRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register material"); err != nil {
		return
	}

	yields := make([]alchemy.YieldInput, 0, len(req.Elements))
	for _, e := range req.Elements {
		yields = append(yields, alchemy.YieldInput{Name: e.Name, Yield: e.Yield})
	}

	mapping, err := h.svc.RegisterExtractionMapping(r.Context(), req.Material, yields)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterMapFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping)
}

// Craft handles POST /alchemy/craft
func (h *AlchemyHandler) Craft(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Craft"); err != nil {
		return
	}

	requirements := make([]domain.RecipeRequirement, 0, len(req.Recipe.Elements))
	for _, e := range req.Recipe.Elements {
		requirements = append(requirements, domain.RecipeRequirement{
			ElementName: e.Name,
			Proportion:  e.Proportion,
		})
	}

	if err := h.svc.Craft(r.Context(), req.Recipe.ProductName, requirements, req.CrafterID); err != nil {
		respondServiceError(w, r, ErrMsgCraftFailed, err)
		return
	}

	metrics.PotionsCrafted.Inc()
	log.Info("Craft handled", "product", req.Recipe.ProductName, "crafterID", req.CrafterID)
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// Extract handles POST /alchemy/extract
func (h *AlchemyHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Extract"); err != nil {
		return
	}

	result, err := h.svc.Extract(r.Context(), req.MaterialID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, ErrMsgExtractFailed, err)
		return
	}

	metrics.ExtractionsPerformed.Inc()
	respondJSON(w, http.StatusOK, ExtractResponse{
		Ok:         true,
		MaterialID: result.MaterialID,
		Quantity:   result.Quantity,
	})
}
