package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/repository"
)

// Session is what a successful login exposes to the session layer: identity
// and access level, never the hash.
type Session struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

// Service defines the interface for authentication
type Service interface {
	// Authenticate verifies the credentials against the stored bcrypt hash.
	// Unknown names and wrong passwords both return domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, name, password string) (*Session, error)
}

type service struct {
	repo repository.Login
}

// NewService creates a new auth service
func NewService(repo repository.Login) Service {
	return &service{repo: repo}
}

func (s *service) Authenticate(ctx context.Context, name, password string) (*Session, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", domain.ErrInvalidPayload)
	}

	player, err := s.repo.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}
	if player == nil {
		// Hash comparison against a fixed cost keeps timing comparable
		// between unknown names and wrong passwords.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		log.Warn("Failed login attempt", "player", name)
		return nil, domain.ErrInvalidCredentials
	}

	log.Info("Player authenticated", "player", name, "level", player.Level)
	return &Session{PlayerID: player.ID, Name: player.Name, Level: player.Level}, nil
}
