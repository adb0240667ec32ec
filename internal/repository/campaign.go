package repository

import (
	"context"

	"github.com/barovia-dm/tracker/internal/domain"
)

// CharacterUpdate carries the optional fields of a partial character update.
// Nil pointers leave the stored value untouched.
type CharacterUpdate struct {
	Name            *string
	Info            *string
	Image           *string
	BackgroundImage *string
}

// QuestUpdate carries the optional fields of a partial quest update.
type QuestUpdate struct {
	Title       *string
	Zone        *string
	Npc         *string
	Description *string
	Importance  *int
	Reward      *string
	Completed   *bool
}

// NpcUpdate carries the optional fields of a partial NPC update.
type NpcUpdate struct {
	Name            *string
	Info            *string
	Classification  *string
	Image           *string
	BackgroundImage *string
}

// LoreUpdate carries the optional fields of a partial lore update.
type LoreUpdate struct {
	Title *string
	Text  *string
}

// Campaign defines the interface for the campaign CRUD entities: characters,
// quests, NPCs, lore, currency and equipment.
type Campaign interface {
	// Characters
	GetCharacters(ctx context.Context) ([]domain.Character, error)
	// GetCharacterByID returns domain.ErrCharacterNotFound when absent.
	GetCharacterByID(ctx context.Context, id int) (*domain.Character, error)
	InsertCharacter(ctx context.Context, c *domain.Character) (int, error)
	// UpdateCharacter returns domain.ErrCharacterNotFound on zero rows.
	UpdateCharacter(ctx context.Context, id int, upd CharacterUpdate) error

	// Quests
	GetQuests(ctx context.Context) ([]domain.Quest, error)
	// GetQuestByID returns domain.ErrQuestNotFound when absent.
	GetQuestByID(ctx context.Context, id int) (*domain.Quest, error)
	InsertQuest(ctx context.Context, q *domain.Quest) (int, error)
	// UpdateQuest returns domain.ErrQuestNotFound on zero rows.
	UpdateQuest(ctx context.Context, id int, upd QuestUpdate) error

	// NPCs
	GetNpcs(ctx context.Context) ([]domain.Npc, error)
	// GetNpcByID returns domain.ErrNpcNotFound when absent.
	GetNpcByID(ctx context.Context, id int) (*domain.Npc, error)
	InsertNpc(ctx context.Context, n *domain.Npc) (int, error)
	// UpdateNpc returns domain.ErrNpcNotFound on zero rows.
	UpdateNpc(ctx context.Context, id int, upd NpcUpdate) error

	// Lore
	GetLoreEntries(ctx context.Context) ([]domain.LoreEntry, error)
	InsertLoreEntry(ctx context.Context, l *domain.LoreEntry) (int, error)
	// UpdateLoreEntry returns domain.ErrLoreNotFound on zero rows.
	UpdateLoreEntry(ctx context.Context, id int, upd LoreUpdate) error

	// Currency
	GetCoins(ctx context.Context) ([]domain.Coin, error)
	// SetCoinQuantity returns domain.ErrCoinNotFound on zero rows.
	SetCoinQuantity(ctx context.Context, coinID, quantity int) error

	// Equipment
	GetEquipment(ctx context.Context) ([]domain.EquipmentEntry, error)
	InsertCatalogItem(ctx context.Context, name, info string) (int, error)
	// AddCarriedItem increments an existing carrier row or inserts a new one,
	// in the table selected by kind.
	AddCarriedItem(ctx context.Context, characterID, itemID, quantity int, kind domain.CarryKind) error
}
