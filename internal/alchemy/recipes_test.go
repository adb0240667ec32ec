package alchemy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barovia-dm/tracker/internal/domain"
)

func seedBaseElements(repo *MockRepository) {
	repo.AddElement("Aceite", 0)
	repo.AddElement("Grasa", 0)
}

func TestSaveRecipe_RoundTrip(t *testing.T) {
	repo := NewMockRepository()
	seedBaseElements(repo)
	repo.AddElement("Cinabrio", 0)
	repo.AddElement("Azufre", 0)

	svc := NewService(repo)
	productID, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name:        "Golondrina",
		Description: "Restaura vitalidad",
		Regular: []domain.RecipeRequirement{
			{ElementName: "Cinabrio", Proportion: 2},
			{ElementName: "Azufre", Proportion: 1},
		},
		Base: "Grasa",
	})
	require.NoError(t, err)
	assert.Positive(t, productID)

	recipes, err := svc.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, productID, r.ProductID)
	assert.Equal(t, "Golondrina", r.ProductName)
	assert.Equal(t, "Restaura vitalidad", r.Description)
	assert.Equal(t, 1, r.Toxicity)
	assert.Equal(t, domain.BaseGrasa, r.Base)
	require.Len(t, r.Regular, 2)
	assert.Equal(t, "Cinabrio", r.Regular[0].ElementName)
	assert.Equal(t, 2, r.Regular[0].Proportion)
	assert.Equal(t, "Azufre", r.Regular[1].ElementName)
	assert.Equal(t, 1, r.Regular[1].Proportion)
}

func TestSaveRecipe_BaseAlwaysProportionOne(t *testing.T) {
	repo := NewMockRepository()
	seedBaseElements(repo)

	svc := NewService(repo)
	_, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name: "Aceite de espectro",
		Base: "Aceite",
	})
	require.NoError(t, err)

	rows, err := repo.GetRecipeRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aceite", rows[0].ElementName)
	assert.Equal(t, 1, rows[0].Proportion)
}

func TestSaveRecipe_SkipsUnknownElements(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)

	svc := NewService(repo)
	productID, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name: "Gato",
		Regular: []domain.RecipeRequirement{
			{ElementName: "Azufre", Proportion: 2},
			{ElementName: "Mandragora", Proportion: 3},
		},
	})
	require.NoError(t, err)

	rows, err := repo.GetRecipeRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, productID, rows[0].ProductID)
	assert.Equal(t, "Azufre", rows[0].ElementName)
}

func TestSaveRecipe_Validation(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)

	_, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.SaveRecipe(context.Background(), SaveRecipeInput{Name: "Gato"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name: "Gato",
		Regular: []domain.RecipeRequirement{
			{ElementName: "a", Proportion: 1},
			{ElementName: "b", Proportion: 1},
			{ElementName: "c", Proportion: 1},
			{ElementName: "d", Proportion: 1},
			{ElementName: "e", Proportion: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.SaveRecipe(context.Background(), SaveRecipeInput{Name: "Gato", Base: "Mercurio"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestSaveRecipe_DuplicateNamesAllowed(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)

	svc := NewService(repo)
	first, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name:    "Gato",
		Regular: []domain.RecipeRequirement{{ElementName: "Azufre", Proportion: 1}},
	})
	require.NoError(t, err)
	second, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name:    "Gato",
		Regular: []domain.RecipeRequirement{{ElementName: "Azufre", Proportion: 2}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	recipes, err := svc.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestDeleteRecipe_ByIDAndByName(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)
	svc := NewService(repo)

	first, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name:    "Gato",
		Regular: []domain.RecipeRequirement{{ElementName: "Azufre", Proportion: 1}},
	})
	require.NoError(t, err)
	second, err := svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name:    "Golondrina",
		Regular: []domain.RecipeRequirement{{ElementName: "Azufre", Proportion: 2}},
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteRecipe(context.Background(), first, "")
	require.NoError(t, err)
	assert.Equal(t, first, deleted)

	deleted, err = svc.DeleteRecipe(context.Background(), 0, "Golondrina")
	require.NoError(t, err)
	assert.Equal(t, second, deleted)

	recipes, err := svc.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recipes)

	rows, err := repo.GetRecipeRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteRecipe_Errors(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)

	_, err := svc.DeleteRecipe(context.Background(), 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.DeleteRecipe(context.Background(), 0, "Quimera")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.DeleteRecipe(context.Background(), 99, "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListRecipes_CacheInvalidatedOnMutation(t *testing.T) {
	repo := NewMockRepository()
	repo.AddElement("Azufre", 0)
	svc := NewService(repo)

	recipes, err := svc.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recipes)

	// A save must not be hidden by the cached empty listing.
	_, err = svc.SaveRecipe(context.Background(), SaveRecipeInput{
		Name:    "Gato",
		Regular: []domain.RecipeRequirement{{ElementName: "Azufre", Proportion: 1}},
	})
	require.NoError(t, err)

	recipes, err = svc.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestListRecipes_ProductWithoutRequirements(t *testing.T) {
	repo := NewMockRepository()
	_, err := repo.InsertProduct(context.Background(), "Vacio", "sin receta", 1)
	require.NoError(t, err)

	svc := NewService(repo)
	recipes, err := svc.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Vacio", recipes[0].ProductName)
	assert.Empty(t, recipes[0].Regular)
	assert.Empty(t, recipes[0].Base)
}
