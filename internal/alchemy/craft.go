package alchemy

import (
	"context"
	"fmt"
	"strings"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/repository"
)

// Craft consumes the recipe's elements from the ledger and credits one unit
// of the product to the crafting character. The whole sequence runs inside a
// single row-locked transaction: every required element row is locked while
// stock is validated, so a concurrent craft cannot slip between the check and
// the debit. Either every mutation applies or none does.
func (s *service) Craft(ctx context.Context, productName string, requirements []domain.RecipeRequirement, crafterID int) error {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(productName)
	if name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidPayload)
	}
	if crafterID <= 0 {
		return fmt.Errorf("%w: crafter character id is required", domain.ErrInvalidPayload)
	}

	log.Info("Craft requested", "product", name, "crafterID", crafterID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	productID, err := tx.GetProductIDByName(ctx, name)
	if err != nil {
		return err
	}

	// Entries with a blank name or non-positive proportion impose no
	// constraint and are skipped outright.
	type debit struct {
		elementID  int
		name       string
		proportion int
	}
	debits := make([]debit, 0, len(requirements))

	// Validate every requirement before touching anything. The same element
	// appearing twice sums its consumption across occurrences, so stock is
	// checked against the running total, not each line alone.
	consumed := map[int]int{}
	for _, req := range requirements {
		elementName := strings.TrimSpace(req.ElementName)
		if elementName == "" || req.Proportion <= 0 {
			continue
		}

		element, err := tx.GetElementByNameForUpdate(ctx, elementName)
		if err != nil {
			return err
		}
		if element == nil {
			return fmt.Errorf("%w: %s", domain.ErrElementNotFound, elementName)
		}

		consumed[element.ID] += req.Proportion
		if element.Quantity < consumed[element.ID] {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, element.Name)
		}

		debits = append(debits, debit{elementID: element.ID, name: element.Name, proportion: req.Proportion})
	}

	// Debit stock
	for _, d := range debits {
		if err := tx.AdjustElementQuantity(ctx, d.elementID, -d.proportion); err != nil {
			return err
		}
	}

	// Credit the crafter with one unit of the finished product
	if err := tx.AddPotionToCharacter(ctx, crafterID, productID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit craft: %w", err)
	}

	log.Info("Craft completed", "product", name, "productID", productID, "crafterID", crafterID, "elements", len(debits))
	return nil
}
