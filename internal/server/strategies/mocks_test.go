package strategies

import (
	"context"

	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/stretchr/testify/mock"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) AddSession(ctx context.Context, userID string, s models.Session) (*models.User, error) {
	args := m.Called(ctx, userID, s)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) RemoveSessions(ctx context.Context, userID string, token string) (*models.User, error) {
	args := m.Called(ctx, userID, token)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
