package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/repository"
)

// CoinUpdate is one entry of a bulk currency write: an absolute quantity for
// one denomination.
type CoinUpdate struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// AddEquipmentInput describes an item or potion handed to a character. ItemID
// zero with kind Item creates the catalog row first; potions must reference an
// existing product.
type AddEquipmentInput struct {
	CharacterID int
	ItemID      int
	Name        string
	Info        string
	Quantity    int
	Kind        domain.CarryKind
}

// Service defines the interface for campaign tracking operations
type Service interface {
	// Characters
	ListCharacters(ctx context.Context) ([]domain.Character, error)
	GetCharacter(ctx context.Context, id int) (*domain.Character, error)
	CreateCharacter(ctx context.Context, c domain.Character) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, id int, upd repository.CharacterUpdate) error

	// Quests
	ListQuests(ctx context.Context) ([]domain.Quest, error)
	GetQuest(ctx context.Context, id int) (*domain.Quest, error)
	CreateQuest(ctx context.Context, q domain.Quest) (*domain.Quest, error)
	UpdateQuest(ctx context.Context, id int, upd repository.QuestUpdate) error

	// NPCs
	ListNpcs(ctx context.Context) ([]domain.Npc, error)
	GetNpc(ctx context.Context, id int) (*domain.Npc, error)
	CreateNpc(ctx context.Context, n domain.Npc) (*domain.Npc, error)
	UpdateNpc(ctx context.Context, id int, upd repository.NpcUpdate) error

	// Lore
	ListLore(ctx context.Context) ([]domain.LoreEntry, error)
	CreateLoreEntry(ctx context.Context, l domain.LoreEntry) (*domain.LoreEntry, error)
	UpdateLoreEntry(ctx context.Context, id int, upd repository.LoreUpdate) error

	// Currency
	ListCoins(ctx context.Context) ([]domain.Coin, error)
	UpdateCoins(ctx context.Context, updates []CoinUpdate) error

	// Equipment
	ListEquipment(ctx context.Context) ([]domain.EquipmentEntry, error)
	AddEquipment(ctx context.Context, input AddEquipmentInput) (int, error)
}

type service struct {
	repo repository.Campaign
}

// NewService creates a new campaign service
func NewService(repo repository.Campaign) Service {
	return &service{repo: repo}
}

func (s *service) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	characters, err := s.repo.GetCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

func (s *service) GetCharacter(ctx context.Context, id int) (*domain.Character, error) {
	return s.repo.GetCharacterByID(ctx, id)
}

func (s *service) CreateCharacter(ctx context.Context, c domain.Character) (*domain.Character, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: character name is required", domain.ErrInvalidPayload)
	}

	id, err := s.repo.InsertCharacter(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	c.ID = id

	logger.FromContext(ctx).Info("Character created", "characterID", id, "name", c.Name)
	return &c, nil
}

func (s *service) UpdateCharacter(ctx context.Context, id int, upd repository.CharacterUpdate) error {
	if upd.Name == nil && upd.Info == nil && upd.Image == nil && upd.BackgroundImage == nil {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidPayload)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return fmt.Errorf("%w: character name must not be blank", domain.ErrInvalidPayload)
	}
	return s.repo.UpdateCharacter(ctx, id, upd)
}

func (s *service) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	quests, err := s.repo.GetQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	return quests, nil
}

func (s *service) GetQuest(ctx context.Context, id int) (*domain.Quest, error) {
	return s.repo.GetQuestByID(ctx, id)
}

func (s *service) CreateQuest(ctx context.Context, q domain.Quest) (*domain.Quest, error) {
	q.Title = strings.TrimSpace(q.Title)
	if q.Title == "" {
		return nil, fmt.Errorf("%w: quest title is required", domain.ErrInvalidPayload)
	}
	if q.Importance <= 0 {
		q.Importance = 1
	}

	id, err := s.repo.InsertQuest(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}
	q.ID = id

	logger.FromContext(ctx).Info("Quest created", "questID", id, "title", q.Title)
	return &q, nil
}

func (s *service) UpdateQuest(ctx context.Context, id int, upd repository.QuestUpdate) error {
	if upd.Title == nil && upd.Zone == nil && upd.Npc == nil && upd.Description == nil &&
		upd.Importance == nil && upd.Reward == nil && upd.Completed == nil {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidPayload)
	}
	return s.repo.UpdateQuest(ctx, id, upd)
}

func (s *service) ListNpcs(ctx context.Context) ([]domain.Npc, error) {
	npcs, err := s.repo.GetNpcs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list npcs: %w", err)
	}
	return npcs, nil
}

func (s *service) GetNpc(ctx context.Context, id int) (*domain.Npc, error) {
	return s.repo.GetNpcByID(ctx, id)
}

func (s *service) CreateNpc(ctx context.Context, n domain.Npc) (*domain.Npc, error) {
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return nil, fmt.Errorf("%w: npc name is required", domain.ErrInvalidPayload)
	}

	id, err := s.repo.InsertNpc(ctx, &n)
	if err != nil {
		return nil, fmt.Errorf("failed to create npc: %w", err)
	}
	n.ID = id

	logger.FromContext(ctx).Info("NPC created", "npcID", id, "name", n.Name)
	return &n, nil
}

func (s *service) UpdateNpc(ctx context.Context, id int, upd repository.NpcUpdate) error {
	if upd.Name == nil && upd.Info == nil && upd.Classification == nil &&
		upd.Image == nil && upd.BackgroundImage == nil {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidPayload)
	}
	return s.repo.UpdateNpc(ctx, id, upd)
}

func (s *service) ListLore(ctx context.Context) ([]domain.LoreEntry, error) {
	entries, err := s.repo.GetLoreEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lore: %w", err)
	}
	return entries, nil
}

func (s *service) CreateLoreEntry(ctx context.Context, l domain.LoreEntry) (*domain.LoreEntry, error) {
	l.Title = strings.TrimSpace(l.Title)
	if l.Title == "" {
		return nil, fmt.Errorf("%w: lore title is required", domain.ErrInvalidPayload)
	}

	id, err := s.repo.InsertLoreEntry(ctx, &l)
	if err != nil {
		return nil, fmt.Errorf("failed to create lore entry: %w", err)
	}
	l.ID = id
	return &l, nil
}

func (s *service) UpdateLoreEntry(ctx context.Context, id int, upd repository.LoreUpdate) error {
	if upd.Title == nil && upd.Text == nil {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidPayload)
	}
	return s.repo.UpdateLoreEntry(ctx, id, upd)
}

func (s *service) ListCoins(ctx context.Context) ([]domain.Coin, error) {
	coins, err := s.repo.GetCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}
	return coins, nil
}

// UpdateCoins applies a bulk absolute write over the currency denominations.
// Writes are last-write-wins per denomination; there is no transactional
// grouping across coins since each entry is independent.
func (s *service) UpdateCoins(ctx context.Context, updates []CoinUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: no coin updates provided", domain.ErrInvalidPayload)
	}
	for _, u := range updates {
		if u.ID <= 0 || u.Quantity < 0 {
			return fmt.Errorf("%w: coin updates need a valid id and non-negative quantity", domain.ErrInvalidPayload)
		}
	}

	for _, u := range updates {
		if err := s.repo.SetCoinQuantity(ctx, u.ID, u.Quantity); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).Info("Currency updated", "denominations", len(updates))
	return nil
}

func (s *service) ListEquipment(ctx context.Context) ([]domain.EquipmentEntry, error) {
	equipment, err := s.repo.GetEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

// AddEquipment hands quantity units of an item or potion to a character.
// An item with id zero is registered in the catalog first; potions must name
// an existing product, there is no inline potion creation.
func (s *service) AddEquipment(ctx context.Context, input AddEquipmentInput) (int, error) {
	log := logger.FromContext(ctx)

	if input.CharacterID <= 0 {
		return 0, fmt.Errorf("%w: character id is required", domain.ErrInvalidPayload)
	}
	if input.Quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidPayload)
	}
	if input.Kind != domain.CarryItem && input.Kind != domain.CarryPotion {
		return 0, fmt.Errorf("%w: unknown equipment kind %q", domain.ErrInvalidPayload, input.Kind)
	}

	if _, err := s.repo.GetCharacterByID(ctx, input.CharacterID); err != nil {
		return 0, err
	}

	itemID := input.ItemID
	if itemID == 0 {
		if input.Kind == domain.CarryPotion {
			return 0, fmt.Errorf("%w: potions must reference an existing product", domain.ErrInvalidPayload)
		}
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return 0, fmt.Errorf("%w: new items need a name", domain.ErrInvalidPayload)
		}

		id, err := s.repo.InsertCatalogItem(ctx, name, input.Info)
		if err != nil {
			return 0, fmt.Errorf("failed to create catalog item: %w", err)
		}
		itemID = id
		log.Info("Catalog item created", "itemID", itemID, "name", name)
	}

	if err := s.repo.AddCarriedItem(ctx, input.CharacterID, itemID, input.Quantity, input.Kind); err != nil {
		return 0, err
	}

	log.Info("Equipment added", "characterID", input.CharacterID, "itemID", itemID, "quantity", input.Quantity, "kind", input.Kind)
	return itemID, nil
}
