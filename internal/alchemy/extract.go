package alchemy

import (
	"context"
	"fmt"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/repository"
)

// Extract converts material stock into element stock at the registered
// yields: extracting quantity units of a material credits every mapped
// element with yield * quantity. Runs inside a single transaction with the
// material row locked, so no partial extraction is ever visible.
func (s *service) Extract(ctx context.Context, materialID, quantity int) (*domain.ExtractionResult, error) {
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidPayload)
	}

	log.Info("Extraction requested", "materialID", materialID, "quantity", quantity)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	material, err := tx.GetMaterialForUpdate(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}

	if material.Quantity < quantity {
		return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, material.Name)
	}

	yields, err := tx.GetExtractionYields(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if len(yields) == 0 {
		return nil, domain.ErrNoExtractionMapping
	}

	if err := tx.AdjustMaterialQuantity(ctx, materialID, -quantity); err != nil {
		return nil, err
	}

	for _, y := range yields {
		increment := y.YieldPerUnit * quantity
		if increment <= 0 {
			continue
		}
		if err := tx.AdjustElementQuantity(ctx, y.ElementID, increment); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit extraction: %w", err)
	}

	log.Info("Extraction completed", "material", material.Name, "quantity", quantity, "elements", len(yields))
	return &domain.ExtractionResult{MaterialID: materialID, Quantity: quantity}, nil
}
