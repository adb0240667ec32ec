package handler

import (
	"encoding/json"
	"net/http"

	"github.com/barovia-dm/tracker/internal/campaign"
	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/repository"
)

// CreateCharacterRequest creates a new character sheet entry
type CreateCharacterRequest struct {
	Name            string `json:"name" validate:"required"`
	Info            string `json:"info"`
	Image           string `json:"image"`
	BackgroundImage string `json:"background_image"`
}

// UpdateCharacterRequest carries a partial character update; omitted fields
// keep their stored values
type UpdateCharacterRequest struct {
	Name            *string `json:"name"`
	Info            *string `json:"info"`
	Image           *string `json:"image"`
	BackgroundImage *string `json:"background_image"`
}

// CreateQuestRequest creates a new quest
type CreateQuestRequest struct {
	Title       string `json:"title" validate:"required"`
	Zone        string `json:"zone"`
	Npc         string `json:"npc"`
	Description string `json:"description"`
	Importance  int    `json:"importance"`
	Reward      string `json:"reward"`
	Completed   bool   `json:"completed"`
}

// UpdateQuestRequest carries a partial quest update
type UpdateQuestRequest struct {
	Title       *string `json:"title"`
	Zone        *string `json:"zone"`
	Npc         *string `json:"npc"`
	Description *string `json:"description"`
	Importance  *int    `json:"importance"`
	Reward      *string `json:"reward"`
	Completed   *bool   `json:"completed"`
}

// CreateNpcRequest creates a new NPC entry
type CreateNpcRequest struct {
	Name            string `json:"name" validate:"required"`
	Info            string `json:"info"`
	Classification  string `json:"classification"`
	Image           string `json:"image"`
	BackgroundImage string `json:"background_image"`
}

// UpdateNpcRequest carries a partial NPC update
type UpdateNpcRequest struct {
	Name            *string `json:"name"`
	Info            *string `json:"info"`
	Classification  *string `json:"classification"`
	Image           *string `json:"image"`
	BackgroundImage *string `json:"background_image"`
}

// CreateLoreRequest creates a new lore entry
type CreateLoreRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"`
}

// UpdateLoreRequest carries a partial lore update
type UpdateLoreRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

// AddEquipmentRequest hands an item or potion to a character. Item id zero
// with kind Item creates the catalog entry from name/info first.
type AddEquipmentRequest struct {
	CharacterID int    `json:"character_id" validate:"required,gt=0"`
	ItemID      int    `json:"item_id"`
	Name        string `json:"name"`
	Info        string `json:"info"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Kind        string `json:"kind" validate:"required"`
}

// AddEquipmentResponse returns the catalog id the equipment landed under
type AddEquipmentResponse struct {
	Ok     bool `json:"ok"`
	ItemID int  `json:"item_id"`
}

// CampaignHandler handles campaign tracking HTTP requests
type CampaignHandler struct {
	svc campaign.Service
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(svc campaign.Service) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// GetCharacters handles GET /characters
func (h *CampaignHandler) GetCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.svc.ListCharacters(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCharactersFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, characters)
}

// GetCharacter handles GET /characters/{id}
func (h *CampaignHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	character, err := h.svc.GetCharacter(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCharactersFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, character)
}

// CreateCharacter handles POST /characters
func (h *CampaignHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req CreateCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
		return
	}

	created, err := h.svc.CreateCharacter(r.Context(), domain.Character{
		Name:            req.Name,
		Info:            req.Info,
		Image:           req.Image,
		BackgroundImage: req.BackgroundImage,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveCharacterFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCharacter handles PUT /characters/{id}
func (h *CampaignHandler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	var req UpdateCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update character"); err != nil {
		return
	}

	err := h.svc.UpdateCharacter(r.Context(), id, repository.CharacterUpdate{
		Name:            req.Name,
		Info:            req.Info,
		Image:           req.Image,
		BackgroundImage: req.BackgroundImage,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveCharacterFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// GetQuests handles GET /quests
func (h *CampaignHandler) GetQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.svc.ListQuests(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetQuestsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// GetQuest handles GET /quests/{id}
func (h *CampaignHandler) GetQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	quest, err := h.svc.GetQuest(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetQuestsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, quest)
}

// CreateQuest handles POST /quests
func (h *CampaignHandler) CreateQuest(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create quest"); err != nil {
		return
	}

	created, err := h.svc.CreateQuest(r.Context(), domain.Quest{
		Title:       req.Title,
		Zone:        req.Zone,
		Npc:         req.Npc,
		Description: req.Description,
		Importance:  req.Importance,
		Reward:      req.Reward,
		Completed:   req.Completed,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveQuestFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateQuest handles PUT /quests/{id}
func (h *CampaignHandler) UpdateQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	var req UpdateQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update quest"); err != nil {
		return
	}

	err := h.svc.UpdateQuest(r.Context(), id, repository.QuestUpdate{
		Title:       req.Title,
		Zone:        req.Zone,
		Npc:         req.Npc,
		Description: req.Description,
		Importance:  req.Importance,
		Reward:      req.Reward,
		Completed:   req.Completed,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveQuestFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// GetNpcs handles GET /npcs
func (h *CampaignHandler) GetNpcs(w http.ResponseWriter, r *http.Request) {
	npcs, err := h.svc.ListNpcs(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetNpcsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, npcs)
}

// GetNpc handles GET /npcs/{id}
func (h *CampaignHandler) GetNpc(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	npc, err := h.svc.GetNpc(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetNpcsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, npc)
}

// CreateNpc handles POST /npcs
func (h *CampaignHandler) CreateNpc(w http.ResponseWriter, r *http.Request) {
	var req CreateNpcRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create npc"); err != nil {
		return
	}

	created, err := h.svc.CreateNpc(r.Context(), domain.Npc{
		Name:            req.Name,
		Info:            req.Info,
		Classification:  req.Classification,
		Image:           req.Image,
		BackgroundImage: req.BackgroundImage,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveNpcFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateNpc handles PUT /npcs/{id}
func (h *CampaignHandler) UpdateNpc(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	var req UpdateNpcRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update npc"); err != nil {
		return
	}

	err := h.svc.UpdateNpc(r.Context(), id, repository.NpcUpdate{
		Name:            req.Name,
		Info:            req.Info,
		Classification:  req.Classification,
		Image:           req.Image,
		BackgroundImage: req.BackgroundImage,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveNpcFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// GetLore handles GET /lore
func (h *CampaignHandler) GetLore(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListLore(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetLoreFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// CreateLoreEntry handles POST /lore
func (h *CampaignHandler) CreateLoreEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateLoreRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create lore entry"); err != nil {
		return
	}

	created, err := h.svc.CreateLoreEntry(r.Context(), domain.LoreEntry{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveLoreFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateLoreEntry handles PUT /lore/{id}
func (h *CampaignHandler) UpdateLoreEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w)
	if !ok {
		return
	}

	var req UpdateLoreRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update lore entry"); err != nil {
		return
	}

	err := h.svc.UpdateLoreEntry(r.Context(), id, repository.LoreUpdate{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveLoreFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// GetCoins handles GET /currency
func (h *CampaignHandler) GetCoins(w http.ResponseWriter, r *http.Request) {
	coins, err := h.svc.ListCoins(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCoinsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, coins)
}

// UpdateCoins handles PUT /currency (bulk absolute write)
func (h *CampaignHandler) UpdateCoins(w http.ResponseWriter, r *http.Request) {
	// The payload is a bare array, so it bypasses struct validation; the
	// service validates each entry.
	var updates []campaign.CoinUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logger.FromContext(r.Context()).Error("Failed to decode currency update", "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateCoins(r.Context(), updates); err != nil {
		respondServiceError(w, r, ErrMsgUpdateCoinsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// GetEquipment handles GET /equipment
func (h *CampaignHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.svc.ListEquipment(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEquipmentFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, equipment)
}

// AddEquipment handles POST /equipment
func (h *CampaignHandler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	var req AddEquipmentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add equipment"); err != nil {
		return
	}

	itemID, err := h.svc.AddEquipment(r.Context(), campaign.AddEquipmentInput{
		CharacterID: req.CharacterID,
		ItemID:      req.ItemID,
		Name:        req.Name,
		Info:        req.Info,
		Quantity:    req.Quantity,
		Kind:        domain.CarryKind(req.Kind),
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgAddEquipmentFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, AddEquipmentResponse{Ok: true, ItemID: itemID})
}
