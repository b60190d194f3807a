package seed

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
)

type stubUsers struct {
	users     map[string]*models.User
	lookupErr error
	creates   int
}

func (s *stubUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUsers) CreateUser(_ context.Context, user *models.User) error {
	s.creates++
	s.users[user.Email] = user
	return nil
}

func TestCreateDefaultData(t *testing.T) {
	lgr := zerolog.New(io.Discard)
	ctx := context.Background()

	t.Run("creates admin once", func(t *testing.T) {
		store := &stubUsers{users: map[string]*models.User{}}
		admin := AdminAccount{Email: " Root@Mentorium.dev ", Name: "Root"}

		require.NoError(t, CreateDefaultData(ctx, store, admin, lgr))
		require.NoError(t, CreateDefaultData(ctx, store, admin, lgr))

		assert.Equal(t, 1, store.creates)
		assert.Equal(t, models.RoleAdmin, store.users["root@mentorium.dev"].Role)
	})

	t.Run("keeps existing account", func(t *testing.T) {
		store := &stubUsers{users: map[string]*models.User{
			"root@mentorium.dev": {Email: "root@mentorium.dev", Role: models.RoleStudent},
		}}

		require.NoError(t, CreateDefaultData(ctx, store, AdminAccount{Email: "root@mentorium.dev"}, lgr))
		assert.Zero(t, store.creates)
		assert.Equal(t, models.RoleStudent, store.users["root@mentorium.dev"].Role)
	})

	t.Run("no email configured", func(t *testing.T) {
		store := &stubUsers{users: map[string]*models.User{}}
		require.NoError(t, CreateDefaultData(ctx, store, AdminAccount{}, lgr))
		assert.Zero(t, store.creates)
	})

	t.Run("lookup failure", func(t *testing.T) {
		store := &stubUsers{users: map[string]*models.User{}, lookupErr: errors.New("db down")}
		err := CreateDefaultData(ctx, store, AdminAccount{Email: "a@x.com"}, lgr)
		assert.Error(t, err)
		assert.Zero(t, store.creates)
	})
}
