package alchemy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barovia-dm/tracker/internal/domain"
)

func TestGetElements_OrderedByName(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Vitriolo", 3)
	repo.AddElement("Azufre", 1)
	repo.AddElement("Cinabrio", 2)

	svc := NewService(repo)
	elements, err := svc.GetElements(context.Background())
	require.NoError(t, err)
	require.Len(t, elements, 3)
	assert.Equal(t, "Azufre", elements[0].Name)
	assert.Equal(t, "Cinabrio", elements[1].Name)
	assert.Equal(t, "Vitriolo", elements[2].Name)
}

func TestSetElementQuantity(t *testing.T) {
	repo := NewMockRepository()
	azufre := repo.AddElement("Azufre", 5)
	svc := NewService(repo)

	require.NoError(t, svc.SetElementQuantity(context.Background(), azufre, 12))
	assert.Equal(t, 12, repo.ElementQuantity(azufre))

	// Direct-set is absolute, not relative.
	require.NoError(t, svc.SetElementQuantity(context.Background(), azufre, 0))
	assert.Equal(t, 0, repo.ElementQuantity(azufre))

	err := svc.SetElementQuantity(context.Background(), azufre, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.SetElementQuantity(context.Background(), 404, 3)
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
}

func TestRegisterExtractionMapping_CreatesMaterial(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)
	repo.AddElement("Vitriolo", 0)

	svc := NewService(repo)
	result, err := svc.RegisterExtractionMapping(context.Background(), "Hierbas", []YieldInput{
		{Name: "Azufre", Yield: 2},
		{Name: "Vitriolo", Yield: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hierbas", result.MaterialName)
	assert.Equal(t, 0, result.Stock)
	require.Len(t, result.Elements, 2)

	mat, err := repo.GetMaterialByName(context.Background(), "Hierbas")
	require.NoError(t, err)
	require.NotNil(t, mat)
}

func TestRegisterExtractionMapping_UpsertsExistingPair(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)

	svc := NewService(repo)
	_, err := svc.RegisterExtractionMapping(context.Background(), "Hierbas", []YieldInput{
		{Name: "Azufre", Yield: 2},
	})
	require.NoError(t, err)

	// Registering the same pair again replaces the yield, it does not stack.
	result, err := svc.RegisterExtractionMapping(context.Background(), "Hierbas", []YieldInput{
		{Name: "Azufre", Yield: 5},
	})
	require.NoError(t, err)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, 5, result.Elements[0].YieldPerUnit)

	materials, err := svc.GetMaterialMap(context.Background())
	require.NoError(t, err)
	assert.Len(t, materials, 1)
}

func TestRegisterExtractionMapping_SkipsUnknownElements(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)

	svc := NewService(repo)
	result, err := svc.RegisterExtractionMapping(context.Background(), "Hierbas", []YieldInput{
		{Name: "Azufre", Yield: 2},
		{Name: "Mandragora", Yield: 4},
	})
	require.NoError(t, err)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, "Azufre", result.Elements[0].ElementName)
}

func TestRegisterExtractionMapping_Validation(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)
	svc := NewService(repo)

	_, err := svc.RegisterExtractionMapping(context.Background(), "  ", []YieldInput{{Name: "Azufre", Yield: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.RegisterExtractionMapping(context.Background(), "Hierbas", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	// Entries with blank names or non-positive yields do not count as valid.
	_, err = svc.RegisterExtractionMapping(context.Background(), "Hierbas", []YieldInput{
		{Name: "", Yield: 3},
		{Name: "Azufre", Yield: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestGetMaterialMap_GroupsByMaterial(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)
	repo.AddElement("Vitriolo", 0)
	svc := NewService(repo)

	_, err := svc.RegisterExtractionMapping(context.Background(), "Hierbas", []YieldInput{
		{Name: "Azufre", Yield: 2},
		{Name: "Vitriolo", Yield: 1},
	})
	require.NoError(t, err)
	_, err = svc.RegisterExtractionMapping(context.Background(), "Cristales", []YieldInput{
		{Name: "Vitriolo", Yield: 3},
	})
	require.NoError(t, err)

	materials, err := svc.GetMaterialMap(context.Background())
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, "Cristales", materials[0].MaterialName)
	assert.Len(t, materials[0].Elements, 1)
	assert.Equal(t, "Hierbas", materials[1].MaterialName)
	assert.Len(t, materials[1].Elements, 2)
}
