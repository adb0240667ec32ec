package domain

// Character is a player or party character sheet entry.
type Character struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Info            string `json:"info,omitempty"`
	Image           string `json:"image,omitempty"`
	BackgroundImage string `json:"background_image,omitempty"`
}

// Quest is a campaign mission. Completed is stored as 0/1 in the schema
// but exposed as a bool on the wire.
type Quest struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Zone        string `json:"zone,omitempty"`
	Npc         string `json:"npc,omitempty"`
	Description string `json:"description,omitempty"`
	Importance  int    `json:"importance"`
	Reward      string `json:"reward,omitempty"`
	Completed   bool   `json:"completed"`
}

// Npc is a non-player character entry.
type Npc struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Info            string `json:"info,omitempty"`
	Classification  string `json:"classification,omitempty"`
	Image           string `json:"image,omitempty"`
	BackgroundImage string `json:"background_image,omitempty"`
}

// LoreEntry is a piece of narrative background.
type LoreEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// Coin is one currency denomination and the party's on-hand amount.
type Coin struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CarryKind distinguishes the two carrier tables equipment can live in.
type CarryKind string

const (
	CarryItem   CarryKind = "Item"
	CarryPotion CarryKind = "Pocion"
)

// EquipmentEntry is one carried item or potion, joined with its owner.
type EquipmentEntry struct {
	CharacterID   int       `json:"character_id"`
	CharacterName string    `json:"character"`
	ItemID        int       `json:"item_id"`
	ItemName      string    `json:"name"`
	Info          string    `json:"info,omitempty"`
	Toxicity      int       `json:"toxicity,omitempty"`
	Quantity      int       `json:"quantity"`
	Kind          CarryKind `json:"kind"`
}

// Player is a row of the login table. PasswordHash is a bcrypt hash and
// never leaves the auth layer.
type Player struct {
	ID           int
	Name         string
	PasswordHash string
	Level        int
}
