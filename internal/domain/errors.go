package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Alchemy errors
	ErrMsgElementNotFound     = "element not found"
	ErrMsgMaterialNotFound    = "material not found"
	ErrMsgProductNotFound     = "product not found"
	ErrMsgInsufficientStock   = "insufficient stock"
	ErrMsgNoExtractionMapping = "material has no extraction mapping"

	// Campaign errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgQuestNotFound     = "quest not found"
	ErrMsgNpcNotFound       = "npc not found"
	ErrMsgLoreNotFound      = "lore entry not found"
	ErrMsgCoinNotFound      = "coin not found"
	ErrMsgItemNotFound      = "item not found"

	// Auth errors
	ErrMsgInvalidCredentials = "invalid credentials"

	// Input errors
	ErrMsgInvalidPayload = "invalid payload"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Alchemy errors
	ErrElementNotFound     = errors.New(ErrMsgElementNotFound)
	ErrMaterialNotFound    = errors.New(ErrMsgMaterialNotFound)
	ErrProductNotFound     = errors.New(ErrMsgProductNotFound)
	ErrInsufficientStock   = errors.New(ErrMsgInsufficientStock)
	ErrNoExtractionMapping = errors.New(ErrMsgNoExtractionMapping)

	// Campaign errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrQuestNotFound     = errors.New(ErrMsgQuestNotFound)
	ErrNpcNotFound       = errors.New(ErrMsgNpcNotFound)
	ErrLoreNotFound      = errors.New(ErrMsgLoreNotFound)
	ErrCoinNotFound      = errors.New(ErrMsgCoinNotFound)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)

	// Auth errors
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)

	// Validation errors
	ErrInvalidPayload = errors.New(ErrMsgInvalidPayload)
)
