package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/repository"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestCharacterLifecycle(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateCharacter(ctx, domain.Character{Name: "Ireena", Info: "Burgomaster's daughter"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := svc.GetCharacter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ireena", got.Name)

	// Partial update leaves unspecified fields alone.
	err = svc.UpdateCharacter(ctx, created.ID, repository.CharacterUpdate{Image: strPtr("ireena.png")})
	require.NoError(t, err)

	got, err = svc.GetCharacter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ireena", got.Name)
	assert.Equal(t, "Burgomaster's daughter", got.Info)
	assert.Equal(t, "ireena.png", got.Image)

	list, err := svc.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateCharacter_RequiresName(t *testing.T) {
	svc := NewService(NewMockRepository())

	_, err := svc.CreateCharacter(context.Background(), domain.Character{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestUpdateCharacter_Validation(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateCharacter(ctx, domain.Character{Name: "Ismark"})
	require.NoError(t, err)

	err = svc.UpdateCharacter(ctx, created.ID, repository.CharacterUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateCharacter(ctx, created.ID, repository.CharacterUpdate{Name: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateCharacter(ctx, 404, repository.CharacterUpdate{Name: strPtr("Ismark el Menor")})
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestQuestLifecycle(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateQuest(ctx, domain.Quest{Title: "Escort Ireena", Zone: "Barovia"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Importance, "importance defaults to 1")
	assert.False(t, created.Completed)

	err = svc.UpdateQuest(ctx, created.ID, repository.QuestUpdate{
		Completed: boolPtr(true),
		Reward:    strPtr("250 gp"),
	})
	require.NoError(t, err)

	got, err := svc.GetQuest(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "250 gp", got.Reward)
	assert.Equal(t, "Barovia", got.Zone)

	_, err = svc.CreateQuest(ctx, domain.Quest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateQuest(ctx, created.ID, repository.QuestUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateQuest(ctx, 404, repository.QuestUpdate{Importance: intPtr(3)})
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
}

func TestQuest_ExplicitImportanceKept(t *testing.T) {
	svc := NewService(NewMockRepository())

	created, err := svc.CreateQuest(context.Background(), domain.Quest{Title: "Find the sunsword", Importance: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Importance)
}

func TestNpcLifecycle(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateNpc(ctx, domain.Npc{Name: "Strahd", Classification: "Villain"})
	require.NoError(t, err)

	err = svc.UpdateNpc(ctx, created.ID, repository.NpcUpdate{Info: strPtr("Lord of Barovia")})
	require.NoError(t, err)

	got, err := svc.GetNpc(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Strahd", got.Name)
	assert.Equal(t, "Villain", got.Classification)
	assert.Equal(t, "Lord of Barovia", got.Info)

	_, err = svc.CreateNpc(ctx, domain.Npc{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateNpc(ctx, 404, repository.NpcUpdate{Name: strPtr("Rahadin")})
	assert.ErrorIs(t, err, domain.ErrNpcNotFound)
}

func TestNpcs_ListedByName(t *testing.T) {
	svc := NewService(NewMockRepository())
	ctx := context.Background()

	_, err := svc.CreateNpc(ctx, domain.Npc{Name: "Strahd"})
	require.NoError(t, err)
	_, err = svc.CreateNpc(ctx, domain.Npc{Name: "Ezmerelda"})
	require.NoError(t, err)

	npcs, err := svc.ListNpcs(ctx)
	require.NoError(t, err)
	require.Len(t, npcs, 2)
	assert.Equal(t, "Ezmerelda", npcs[0].Name)
	assert.Equal(t, "Strahd", npcs[1].Name)
}

func TestLoreLifecycle(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateLoreEntry(ctx, domain.LoreEntry{Title: "The Mists", Text: "They close behind you"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	err = svc.UpdateLoreEntry(ctx, created.ID, repository.LoreUpdate{Text: strPtr("They never open")})
	require.NoError(t, err)

	entries, err := svc.ListLore(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "The Mists", entries[0].Title)
	assert.Equal(t, "They never open", entries[0].Text)

	_, err = svc.CreateLoreEntry(ctx, domain.LoreEntry{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateLoreEntry(ctx, created.ID, repository.LoreUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateLoreEntry(ctx, 404, repository.LoreUpdate{Title: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrLoreNotFound)
}

func TestUpdateCoins_Bulk(t *testing.T) {
	repo := NewMockRepository()
	oro := repo.AddCoin("Oro", 10)
	plata := repo.AddCoin("Plata", 40)
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.UpdateCoins(ctx, []CoinUpdate{
		{ID: oro, Quantity: 25},
		{ID: plata, Quantity: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 25, repo.CoinQuantity(oro))
	assert.Equal(t, 0, repo.CoinQuantity(plata))

	coins, err := svc.ListCoins(ctx)
	require.NoError(t, err)
	assert.Len(t, coins, 2)
}

func TestUpdateCoins_Validation(t *testing.T) {
	repo := NewMockRepository()
	oro := repo.AddCoin("Oro", 10)
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.UpdateCoins(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateCoins(ctx, []CoinUpdate{{ID: 0, Quantity: 5}})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	err = svc.UpdateCoins(ctx, []CoinUpdate{{ID: oro, Quantity: -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Equal(t, 10, repo.CoinQuantity(oro))

	err = svc.UpdateCoins(ctx, []CoinUpdate{{ID: 404, Quantity: 5}})
	assert.ErrorIs(t, err, domain.ErrCoinNotFound)
}

func TestAddEquipment_NewCatalogItem(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	char, err := svc.CreateCharacter(ctx, domain.Character{Name: "Ireena"})
	require.NoError(t, err)

	itemID, err := svc.AddEquipment(ctx, AddEquipmentInput{
		CharacterID: char.ID,
		Name:        "Silvered sword",
		Info:        "Bites harder on the undead",
		Quantity:    1,
		Kind:        domain.CarryItem,
	})
	require.NoError(t, err)
	assert.Positive(t, itemID)

	equipment, err := svc.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, equipment, 1)
	assert.Equal(t, "Silvered sword", equipment[0].ItemName)
	assert.Equal(t, 1, equipment[0].Quantity)
}

func TestAddEquipment_IncrementsExistingCarrierRow(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	char, err := svc.CreateCharacter(ctx, domain.Character{Name: "Ismark"})
	require.NoError(t, err)

	itemID, err := svc.AddEquipment(ctx, AddEquipmentInput{
		CharacterID: char.ID, Name: "Torch", Quantity: 2, Kind: domain.CarryItem,
	})
	require.NoError(t, err)

	_, err = svc.AddEquipment(ctx, AddEquipmentInput{
		CharacterID: char.ID, ItemID: itemID, Quantity: 3, Kind: domain.CarryItem,
	})
	require.NoError(t, err)

	equipment, err := svc.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, equipment, 1)
	assert.Equal(t, 5, equipment[0].Quantity)
}

func TestAddEquipment_Validation(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	char, err := svc.CreateCharacter(ctx, domain.Character{Name: "Ireena"})
	require.NoError(t, err)

	_, err = svc.AddEquipment(ctx, AddEquipmentInput{CharacterID: 0, Name: "x", Quantity: 1, Kind: domain.CarryItem})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.AddEquipment(ctx, AddEquipmentInput{CharacterID: char.ID, Name: "x", Quantity: 0, Kind: domain.CarryItem})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.AddEquipment(ctx, AddEquipmentInput{CharacterID: char.ID, Name: "x", Quantity: 1, Kind: "Armadura"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	// Potions cannot be created inline, only referenced.
	_, err = svc.AddEquipment(ctx, AddEquipmentInput{CharacterID: char.ID, ItemID: 0, Quantity: 1, Kind: domain.CarryPotion})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.AddEquipment(ctx, AddEquipmentInput{CharacterID: char.ID, ItemID: 0, Name: "  ", Quantity: 1, Kind: domain.CarryItem})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.AddEquipment(ctx, AddEquipmentInput{CharacterID: 404, Name: "x", Quantity: 1, Kind: domain.CarryItem})
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}
