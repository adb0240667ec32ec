package alchemy

import (
	"context"
	"fmt"
	"strings"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
)

// defaultToxicity is what every saved product starts with; toxicity tuning
// happens elsewhere in the campaign, not at recipe registration.
const defaultToxicity = 1

// ListRecipes returns all recipes grouped per product: the flat requirement
// rows from storage are folded into one Recipe per product, base substances
// separated from the regular requirements. Results are cached briefly and the
// cache is purged whenever a recipe is saved or deleted.
func (s *service) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	if cached, ok := s.recipeCache.Get(recipeCacheKey); ok {
		return cached, nil
	}

	rows, err := s.repo.GetRecipeRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := []domain.Recipe{}
	index := map[int]int{}
	for _, row := range rows {
		i, ok := index[row.ProductID]
		if !ok {
			i = len(recipes)
			index[row.ProductID] = i
			recipes = append(recipes, domain.Recipe{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				Description: row.Description,
				Toxicity:    row.Toxicity,
				Regular:     []domain.RecipeRequirement{},
			})
		}

		// Products without requirements produce a row with an empty element name.
		if row.ElementName == "" {
			continue
		}

		if domain.IsRecognizedBase(row.ElementName) {
			recipes[i].Base = domain.BaseKind(row.ElementName)
			continue
		}
		recipes[i].Regular = append(recipes[i].Regular, domain.RecipeRequirement{
			ElementName: row.ElementName,
			Proportion:  row.Proportion,
		})
	}

	s.recipeCache.Add(recipeCacheKey, recipes)
	return recipes, nil
}

// SaveRecipe registers a new product with its requirements. Saving is a plain
// insert: a duplicate name produces a second, distinct product. Requirement
// entries with a blank name or non-positive proportion are skipped, as are
// unknown element names. The base requirement always lands with proportion 1.
func (s *service) SaveRecipe(ctx context.Context, input SaveRecipeInput) (int, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: recipe name is required", domain.ErrInvalidPayload)
	}
	if len(input.Regular) == 0 && input.Base == "" {
		return 0, fmt.Errorf("%w: recipe needs at least one requirement", domain.ErrInvalidPayload)
	}
	if len(input.Regular) > domain.MaxRegularRequirements {
		return 0, fmt.Errorf("%w: at most %d regular requirements allowed", domain.ErrInvalidPayload, domain.MaxRegularRequirements)
	}
	if input.Base != "" && !domain.IsRecognizedBase(input.Base) {
		return 0, fmt.Errorf("%w: unknown base %q", domain.ErrInvalidPayload, input.Base)
	}

	productID, err := s.repo.InsertProduct(ctx, name, input.Description, defaultToxicity)
	if err != nil {
		return 0, fmt.Errorf("failed to save recipe: %w", err)
	}

	requirements := make([]domain.RecipeRequirement, 0, len(input.Regular)+1)
	requirements = append(requirements, input.Regular...)
	if input.Base != "" {
		requirements = append(requirements, domain.RecipeRequirement{ElementName: input.Base, Proportion: 1})
	}

	for _, req := range requirements {
		elementName := strings.TrimSpace(req.ElementName)
		if elementName == "" || req.Proportion <= 0 {
			continue
		}

		element, err := s.repo.GetElementByName(ctx, elementName)
		if err != nil {
			return 0, fmt.Errorf("failed to look up element: %w", err)
		}
		if element == nil {
			log.Warn("Skipping unknown element in recipe", "element", elementName)
			continue
		}

		if err := s.repo.InsertRecipeRequirement(ctx, productID, element.ID, req.Proportion); err != nil {
			return 0, fmt.Errorf("failed to save requirement: %w", err)
		}
	}

	s.recipeCache.Purge()
	log.Info("Recipe saved", "product", name, "productID", productID)
	return productID, nil
}

// DeleteRecipe removes a product and its requirement rows. The explicit id
// wins when both id and name are supplied; the name is only a fallback.
func (s *service) DeleteRecipe(ctx context.Context, productID int, productName string) (int, error) {
	log := logger.FromContext(ctx)

	if productID == 0 {
		name := strings.TrimSpace(productName)
		if name == "" {
			return 0, fmt.Errorf("%w: product id or name is required", domain.ErrInvalidPayload)
		}

		id, err := s.repo.GetProductIDByName(ctx, name)
		if err != nil {
			return 0, err
		}
		productID = id
	}

	if err := s.repo.DeleteRecipe(ctx, productID); err != nil {
		return 0, err
	}

	s.recipeCache.Purge()
	log.Info("Recipe deleted", "productID", productID)
	return productID, nil
}
