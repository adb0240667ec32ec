package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/repository"
)

// LoginRepository implements repository.Login for PostgreSQL
type LoginRepository struct {
	pool *pgxpool.Pool
}

// NewLoginRepository creates a new LoginRepository
func NewLoginRepository(pool *pgxpool.Pool) repository.Login {
	return &LoginRepository{pool: pool}
}

// GetPlayerByName retrieves a login row by player name, (nil, nil) when absent
func (r *LoginRepository) GetPlayerByName(ctx context.Context, name string) (*domain.Player, error) {
	var p domain.Player
	err := r.pool.QueryRow(ctx,
		`SELECT id, nombre, password_hash, nivel
		   FROM "Login"
		  WHERE nombre = $1
		  LIMIT 1`,
		name).Scan(&p.ID, &p.Name, &p.PasswordHash, &p.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}
	return &p, nil
}
