package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Alchemy operation error messages
	ErrMsgGetElementsFailed  = "Failed to get elements"
	ErrMsgUpdateElementFail  = "Failed to update element"
	ErrMsgGetMaterialsFailed = "Failed to get materials"
	ErrMsgRegisterMapFailed  = "Failed to register extraction mapping"
	ErrMsgCraftFailed        = "Failed to craft product"
	ErrMsgExtractFailed      = "Failed to extract material"
	ErrMsgGetRecipesFailed   = "Failed to get recipes"
	ErrMsgSaveRecipeFailed   = "Failed to save recipe"
	ErrMsgDeleteRecipeFailed = "Failed to delete recipe"

	// Campaign operation error messages
	ErrMsgGetCharactersFailed = "Failed to get characters"
	ErrMsgSaveCharacterFailed = "Failed to save character"
	ErrMsgGetQuestsFailed     = "Failed to get quests"
	ErrMsgSaveQuestFailed     = "Failed to save quest"
	ErrMsgGetNpcsFailed       = "Failed to get npcs"
	ErrMsgSaveNpcFailed       = "Failed to save npc"
	ErrMsgGetLoreFailed       = "Failed to get lore"
	ErrMsgSaveLoreFailed      = "Failed to save lore entry"
	ErrMsgGetCoinsFailed      = "Failed to get currency"
	ErrMsgUpdateCoinsFailed   = "Failed to update currency"
	ErrMsgGetEquipmentFailed  = "Failed to get equipment"
	ErrMsgAddEquipmentFailed  = "Failed to add equipment"

	// Path parameter error messages
	ErrMsgInvalidID = "Invalid id"

	// Auth error messages
	ErrMsgLoginFailed      = "Invalid name or password"
	ErrMsgNotAuthenticated = "Authentication required"
)
