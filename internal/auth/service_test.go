package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/barovia-dm/tracker/internal/domain"
)

// mockLoginRepository implements repository.Login for testing
type mockLoginRepository struct {
	players map[string]*domain.Player
}

func newMockLoginRepository() *mockLoginRepository {
	return &mockLoginRepository{players: make(map[string]*domain.Player)}
}

func (m *mockLoginRepository) addPlayer(t *testing.T, name, password string, level int) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	m.players[name] = &domain.Player{
		ID:           len(m.players) + 1,
		Name:         name,
		PasswordHash: string(hash),
		Level:        level,
	}
}

func (m *mockLoginRepository) GetPlayerByName(ctx context.Context, name string) (*domain.Player, error) {
	if p, ok := m.players[name]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func TestAuthenticate_Success(t *testing.T) {
	repo := newMockLoginRepository()
	repo.addPlayer(t, "dungeon-master", "ravenloft", 3)

	svc := NewService(repo)
	session, err := svc.Authenticate(context.Background(), "dungeon-master", "ravenloft")
	require.NoError(t, err)

	assert.Equal(t, 1, session.PlayerID)
	assert.Equal(t, "dungeon-master", session.Name)
	assert.Equal(t, 3, session.Level)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newMockLoginRepository()
	repo.addPlayer(t, "dungeon-master", "ravenloft", 3)

	svc := NewService(repo)
	session, err := svc.Authenticate(context.Background(), "dungeon-master", "barovia")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, session)
}

func TestAuthenticate_UnknownPlayer(t *testing.T) {
	svc := NewService(newMockLoginRepository())

	session, err := svc.Authenticate(context.Background(), "stranger", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, session)
}

func TestAuthenticate_MissingFields(t *testing.T) {
	svc := NewService(newMockLoginRepository())

	_, err := svc.Authenticate(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = svc.Authenticate(context.Background(), "name", "")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}
