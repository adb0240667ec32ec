package alchemy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barovia-dm/tracker/internal/domain"
)

func TestExtract_Success(t *testing.T) {
	repo := NewMockRepository()
	azufre := repo.AddElement("Azufre", 0)
	vitriolo := repo.AddElement("Vitriolo", 2)
	hierbas := repo.AddMaterial("Hierbas", 10)
	require.NoError(t, repo.UpsertExtractionYield(context.Background(), hierbas, azufre, 2))
	require.NoError(t, repo.UpsertExtractionYield(context.Background(), hierbas, vitriolo, 1))

	svc := NewService(repo)
	result, err := svc.Extract(context.Background(), hierbas, 3)
	require.NoError(t, err)

	assert.Equal(t, hierbas, result.MaterialID)
	assert.Equal(t, 3, result.Quantity)

	// 3 units consumed, each crediting yield*quantity.
	mat, err := repo.GetMaterialYields(context.Background(), hierbas)
	require.NoError(t, err)
	assert.Equal(t, 7, mat.Stock)
	assert.Equal(t, 6, repo.ElementQuantity(azufre))
	assert.Equal(t, 5, repo.ElementQuantity(vitriolo))
}

func TestExtract_InsufficientStock(t *testing.T) {
	repo := NewMockRepository()
	azufre := repo.AddElement("Azufre", 0)
	hierbas := repo.AddMaterial("Hierbas", 2)
	require.NoError(t, repo.UpsertExtractionYield(context.Background(), hierbas, azufre, 2))

	svc := NewService(repo)
	_, err := svc.Extract(context.Background(), hierbas, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Hierbas")

	mat, err := repo.GetMaterialYields(context.Background(), hierbas)
	require.NoError(t, err)
	assert.Equal(t, 2, mat.Stock)
	assert.Equal(t, 0, repo.ElementQuantity(azufre))
}

func TestExtract_NoMapping(t *testing.T) {
	repo := NewMockRepository()
	hierbas := repo.AddMaterial("Hierbas", 10)

	svc := NewService(repo)
	_, err := svc.Extract(context.Background(), hierbas, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoExtractionMapping)

	// Stock check passed but the mapping check failed; nothing was debited.
	mat, err := repo.GetMaterialYields(context.Background(), hierbas)
	require.NoError(t, err)
	assert.Equal(t, 10, mat.Stock)
}

func TestExtract_UnknownMaterial(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)

	_, err := svc.Extract(context.Background(), 404, 1)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestExtract_NonPositiveQuantity(t *testing.T) {
	repo := NewMockRepository()
	hierbas := repo.AddMaterial("Hierbas", 10)
	svc := NewService(repo)

	_, err := svc.Extract(context.Background(), hierbas, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.Extract(context.Background(), hierbas, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestExtract_ExactStockDrainsMaterial(t *testing.T) {
	repo := NewMockRepository()
	azufre := repo.AddElement("Azufre", 1)
	hierbas := repo.AddMaterial("Hierbas", 4)
	require.NoError(t, repo.UpsertExtractionYield(context.Background(), hierbas, azufre, 3))

	svc := NewService(repo)
	_, err := svc.Extract(context.Background(), hierbas, 4)
	require.NoError(t, err)

	mat, err := repo.GetMaterialYields(context.Background(), hierbas)
	require.NoError(t, err)
	assert.Equal(t, 0, mat.Stock)
	assert.Equal(t, 13, repo.ElementQuantity(azufre))
}
