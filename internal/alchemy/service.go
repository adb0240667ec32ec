package alchemy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/repository"
)

// YieldInput is one element of an extraction mapping registration.
type YieldInput struct {
	Name  string
	Yield int
}

// SaveRecipeInput carries a recipe to be registered. Regular holds at most
// four requirements; Base is empty or one of the recognized base substances.
type SaveRecipeInput struct {
	Name        string
	Description string
	Regular     []domain.RecipeRequirement
	Base        string
}

// Service defines the interface for alchemy operations
type Service interface {
	// Element ledger
	GetElements(ctx context.Context) ([]domain.Element, error)
	SetElementQuantity(ctx context.Context, elementID, quantity int) error

	// Extraction mapper
	GetMaterialMap(ctx context.Context) ([]domain.MaterialYields, error)
	RegisterExtractionMapping(ctx context.Context, materialName string, elements []YieldInput) (*domain.MaterialYields, error)

	// Engines
	Craft(ctx context.Context, productName string, requirements []domain.RecipeRequirement, crafterID int) error
	Extract(ctx context.Context, materialID, quantity int) (*domain.ExtractionResult, error)

	// Recipe registry
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	SaveRecipe(ctx context.Context, input SaveRecipeInput) (int, error)
	DeleteRecipe(ctx context.Context, productID int, productName string) (int, error)
}

type service struct {
	repo        repository.Alchemy
	recipeCache *expirable.LRU[string, []domain.Recipe]
}

// NewService creates a new alchemy service
func NewService(repo repository.Alchemy) Service {
	return &service{
		repo:        repo,
		recipeCache: expirable.NewLRU[string, []domain.Recipe](recipeCacheSize, nil, recipeCacheTTL),
	}
}

const (
	recipeCacheSize = 1
	recipeCacheTTL  = 30 * time.Second
	recipeCacheKey  = "recipes"
)

// GetElements returns all elements ordered by name
func (s *service) GetElements(ctx context.Context) ([]domain.Element, error) {
	elements, err := s.repo.GetElements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get elements: %w", err)
	}
	return elements, nil
}

// SetElementQuantity writes an absolute on-hand quantity for one element.
// This is the direct-set mode behind the manual +/- inventory buttons: the
// client computes the resulting value (clamped at zero) and sends it whole.
func (s *service) SetElementQuantity(ctx context.Context, elementID, quantity int) error {
	log := logger.FromContext(ctx)

	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidPayload)
	}

	if err := s.repo.SetElementQuantity(ctx, elementID, quantity); err != nil {
		return err
	}

	log.Info("Element quantity set", "elementID", elementID, "quantity", quantity)
	return nil
}

// GetMaterialMap returns the extraction mapping grouped by material
func (s *service) GetMaterialMap(ctx context.Context) ([]domain.MaterialYields, error) {
	grouped, err := s.repo.GetMaterialMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get material map: %w", err)
	}
	return grouped, nil
}

// RegisterExtractionMapping creates or updates the element yields of a
// material. The material is created with zero stock when it does not exist
// yet; unknown element names are skipped silently. Re-registering a
// (material, element) pair replaces the prior yield.
func (s *service) RegisterExtractionMapping(ctx context.Context, materialName string, elements []YieldInput) (*domain.MaterialYields, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(materialName)
	if name == "" {
		return nil, fmt.Errorf("%w: material name is required", domain.ErrInvalidPayload)
	}

	valid := make([]YieldInput, 0, len(elements))
	for _, e := range elements {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" || e.Yield <= 0 {
			continue
		}
		valid = append(valid, e)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: at least one valid extractable element is required", domain.ErrInvalidPayload)
	}

	material, err := s.repo.GetMaterialByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up material: %w", err)
	}

	var materialID int
	if material != nil {
		materialID = material.ID
	} else {
		materialID, err = s.repo.CreateMaterial(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create material: %w", err)
		}
		log.Info("Material created", "material", name, "materialID", materialID)
	}

	for _, e := range valid {
		element, err := s.repo.GetElementByName(ctx, e.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up element: %w", err)
		}
		if element == nil {
			log.Warn("Skipping unknown element in mapping", "element", e.Name)
			continue
		}

		if err := s.repo.UpsertExtractionYield(ctx, materialID, element.ID, e.Yield); err != nil {
			return nil, fmt.Errorf("failed to register yield: %w", err)
		}
	}

	updated, err := s.repo.GetMaterialYields(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload mapping: %w", err)
	}

	log.Info("Extraction mapping registered", "material", name, "yields", len(updated.Elements))
	return updated, nil
}
