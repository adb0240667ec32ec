package repository

import (
	"context"

	"github.com/barovia-dm/tracker/internal/domain"
)

// Login defines the interface for the login table.
type Login interface {
	// GetPlayerByName returns (nil, nil) when no player matches, so that the
	// auth layer can answer with the same error for unknown names and bad
	// passwords.
	GetPlayerByName(ctx context.Context, name string) (*domain.Player, error)
}
