package repository

import (
	"context"

	"github.com/barovia-dm/tracker/internal/domain"
)

// Alchemy defines the interface for alchemy persistence: the element/material
// ledger, the extraction mapping, and the recipe registry.
type Alchemy interface {
	// Element ledger operations
	GetElements(ctx context.Context) ([]domain.Element, error)
	// SetElementQuantity writes an absolute quantity (direct-set mode, used by
	// the manual inventory buttons). Returns domain.ErrElementNotFound when the
	// update affects zero rows.
	SetElementQuantity(ctx context.Context, elementID, quantity int) error
	// GetElementByName returns (nil, nil) when no element matches.
	GetElementByName(ctx context.Context, name string) (*domain.Element, error)

	// Material / extraction mapping operations
	GetMaterialMap(ctx context.Context) ([]domain.MaterialYields, error)
	// GetMaterialYields returns the grouped mapping for one material, with an
	// empty Elements slice when nothing is mapped.
	GetMaterialYields(ctx context.Context, materialID int) (*domain.MaterialYields, error)
	// GetMaterialByName returns (nil, nil) when no material matches.
	GetMaterialByName(ctx context.Context, name string) (*domain.Material, error)
	CreateMaterial(ctx context.Context, name string) (int, error)
	// UpsertExtractionYield replaces any prior yield for the
	// (material, element) pair with the given value.
	UpsertExtractionYield(ctx context.Context, materialID, elementID, yieldPerUnit int) error

	// Recipe registry operations
	GetRecipeRows(ctx context.Context) ([]domain.RecipeRow, error)
	InsertProduct(ctx context.Context, name, description string, toxicity int) (int, error)
	InsertRecipeRequirement(ctx context.Context, productID, elementID, proportion int) error
	// GetProductIDByName returns domain.ErrProductNotFound when absent.
	GetProductIDByName(ctx context.Context, name string) (int, error)
	// DeleteRecipe removes all requirement rows for the product, then the
	// product row. Returns domain.ErrProductNotFound when the product is absent.
	DeleteRecipe(ctx context.Context, productID int) error

	// BeginTx starts a row-locked transaction for the crafting and extraction
	// engines.
	BeginTx(ctx context.Context) (AlchemyTx, error)
}

// AlchemyTx defines the transactional operations used by the crafting and
// extraction engines. Every *ForUpdate read locks the row until Commit or
// Rollback so that validate-then-mutate sequences stay atomic under
// concurrent requests.
type AlchemyTx interface {
	// GetProductIDByName returns domain.ErrProductNotFound when absent.
	GetProductIDByName(ctx context.Context, name string) (int, error)
	// GetElementByNameForUpdate returns (nil, nil) when no element matches.
	GetElementByNameForUpdate(ctx context.Context, name string) (*domain.Element, error)
	// GetMaterialForUpdate returns (nil, nil) when no material matches.
	GetMaterialForUpdate(ctx context.Context, materialID int) (*domain.Material, error)
	GetExtractionYields(ctx context.Context, materialID int) ([]domain.ExtractionYield, error)
	// AdjustElementQuantity applies a relative delta in a single statement
	// (quantity = quantity + delta).
	AdjustElementQuantity(ctx context.Context, elementID, delta int) error
	AdjustMaterialQuantity(ctx context.Context, materialID, delta int) error
	// AddPotionToCharacter credits one unit of the product to the character,
	// incrementing an existing carrier row or inserting a fresh one.
	AddPotionToCharacter(ctx context.Context, characterID, productID int) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
