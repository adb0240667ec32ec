package campaign

import (
	"context"
	"sort"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/repository"
)

// MockRepository implements repository.Campaign for testing
type MockRepository struct {
	characters map[int]*domain.Character
	quests     map[int]*domain.Quest
	npcs       map[int]*domain.Npc
	lore       map[int]*domain.LoreEntry
	coins      map[int]*domain.Coin
	catalog    map[int]string
	carried    []domain.EquipmentEntry

	nextID int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		characters: make(map[int]*domain.Character),
		quests:     make(map[int]*domain.Quest),
		npcs:       make(map[int]*domain.Npc),
		lore:       make(map[int]*domain.LoreEntry),
		coins:      make(map[int]*domain.Coin),
		catalog:    make(map[int]string),
	}
}

func (m *MockRepository) AddCoin(name string, quantity int) int {
	m.nextID++
	m.coins[m.nextID] = &domain.Coin{ID: m.nextID, Name: name, Quantity: quantity}
	return m.nextID
}

func (m *MockRepository) CoinQuantity(id int) int {
	if c, ok := m.coins[id]; ok {
		return c.Quantity
	}
	return 0
}

func (m *MockRepository) GetCharacters(ctx context.Context) ([]domain.Character, error) {
	out := make([]domain.Character, 0, len(m.characters))
	for _, c := range m.characters {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) GetCharacterByID(ctx context.Context, id int) (*domain.Character, error) {
	c, ok := m.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MockRepository) InsertCharacter(ctx context.Context, c *domain.Character) (int, error) {
	m.nextID++
	stored := *c
	stored.ID = m.nextID
	m.characters[m.nextID] = &stored
	return m.nextID, nil
}

func (m *MockRepository) UpdateCharacter(ctx context.Context, id int, upd repository.CharacterUpdate) error {
	c, ok := m.characters[id]
	if !ok {
		return domain.ErrCharacterNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Info != nil {
		c.Info = *upd.Info
	}
	if upd.Image != nil {
		c.Image = *upd.Image
	}
	if upd.BackgroundImage != nil {
		c.BackgroundImage = *upd.BackgroundImage
	}
	return nil
}

func (m *MockRepository) GetQuests(ctx context.Context) ([]domain.Quest, error) {
	out := make([]domain.Quest, 0, len(m.quests))
	for _, q := range m.quests {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) GetQuestByID(ctx context.Context, id int) (*domain.Quest, error) {
	q, ok := m.quests[id]
	if !ok {
		return nil, domain.ErrQuestNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *MockRepository) InsertQuest(ctx context.Context, q *domain.Quest) (int, error) {
	m.nextID++
	stored := *q
	stored.ID = m.nextID
	m.quests[m.nextID] = &stored
	return m.nextID, nil
}

func (m *MockRepository) UpdateQuest(ctx context.Context, id int, upd repository.QuestUpdate) error {
	q, ok := m.quests[id]
	if !ok {
		return domain.ErrQuestNotFound
	}
	if upd.Title != nil {
		q.Title = *upd.Title
	}
	if upd.Zone != nil {
		q.Zone = *upd.Zone
	}
	if upd.Npc != nil {
		q.Npc = *upd.Npc
	}
	if upd.Description != nil {
		q.Description = *upd.Description
	}
	if upd.Importance != nil {
		q.Importance = *upd.Importance
	}
	if upd.Reward != nil {
		q.Reward = *upd.Reward
	}
	if upd.Completed != nil {
		q.Completed = *upd.Completed
	}
	return nil
}

func (m *MockRepository) GetNpcs(ctx context.Context) ([]domain.Npc, error) {
	out := make([]domain.Npc, 0, len(m.npcs))
	for _, n := range m.npcs {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockRepository) GetNpcByID(ctx context.Context, id int) (*domain.Npc, error) {
	n, ok := m.npcs[id]
	if !ok {
		return nil, domain.ErrNpcNotFound
	}
	copied := *n
	return &copied, nil
}

func (m *MockRepository) InsertNpc(ctx context.Context, n *domain.Npc) (int, error) {
	m.nextID++
	stored := *n
	stored.ID = m.nextID
	m.npcs[m.nextID] = &stored
	return m.nextID, nil
}

func (m *MockRepository) UpdateNpc(ctx context.Context, id int, upd repository.NpcUpdate) error {
	n, ok := m.npcs[id]
	if !ok {
		return domain.ErrNpcNotFound
	}
	if upd.Name != nil {
		n.Name = *upd.Name
	}
	if upd.Info != nil {
		n.Info = *upd.Info
	}
	if upd.Classification != nil {
		n.Classification = *upd.Classification
	}
	if upd.Image != nil {
		n.Image = *upd.Image
	}
	if upd.BackgroundImage != nil {
		n.BackgroundImage = *upd.BackgroundImage
	}
	return nil
}

func (m *MockRepository) GetLoreEntries(ctx context.Context) ([]domain.LoreEntry, error) {
	out := make([]domain.LoreEntry, 0, len(m.lore))
	for _, l := range m.lore {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) InsertLoreEntry(ctx context.Context, l *domain.LoreEntry) (int, error) {
	m.nextID++
	stored := *l
	stored.ID = m.nextID
	m.lore[m.nextID] = &stored
	return m.nextID, nil
}

func (m *MockRepository) UpdateLoreEntry(ctx context.Context, id int, upd repository.LoreUpdate) error {
	l, ok := m.lore[id]
	if !ok {
		return domain.ErrLoreNotFound
	}
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.Text != nil {
		l.Text = *upd.Text
	}
	return nil
}

func (m *MockRepository) GetCoins(ctx context.Context) ([]domain.Coin, error) {
	out := make([]domain.Coin, 0, len(m.coins))
	for _, c := range m.coins {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) SetCoinQuantity(ctx context.Context, coinID, quantity int) error {
	c, ok := m.coins[coinID]
	if !ok {
		return domain.ErrCoinNotFound
	}
	c.Quantity = quantity
	return nil
}

func (m *MockRepository) GetEquipment(ctx context.Context) ([]domain.EquipmentEntry, error) {
	out := append([]domain.EquipmentEntry{}, m.carried...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CharacterName != out[j].CharacterName {
			return out[i].CharacterName < out[j].CharacterName
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

func (m *MockRepository) InsertCatalogItem(ctx context.Context, name, info string) (int, error) {
	m.nextID++
	m.catalog[m.nextID] = name
	return m.nextID, nil
}

func (m *MockRepository) AddCarriedItem(ctx context.Context, characterID, itemID, quantity int, kind domain.CarryKind) error {
	for i, e := range m.carried {
		if e.CharacterID == characterID && e.ItemID == itemID && e.Kind == kind {
			m.carried[i].Quantity += quantity
			return nil
		}
	}

	name := m.catalog[itemID]
	charName := ""
	if c, ok := m.characters[characterID]; ok {
		charName = c.Name
	}
	m.carried = append(m.carried, domain.EquipmentEntry{
		CharacterID:   characterID,
		CharacterName: charName,
		ItemID:        itemID,
		ItemName:      name,
		Quantity:      quantity,
		Kind:          kind,
	})
	return nil
}
