package users

import (
	"context"
	"testing"

	"roadside-dispatch/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	usersByName map[string]*models.User
	dispatchers []models.Dispatcher
	nextID      int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByName: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, userID int) (*models.User, error) {
	for _, u := range f.usersByName {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.usersByName[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	user := &models.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, Role: role}
	f.nextID++
	f.usersByName[username] = user
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindDispatcherByID(ctx context.Context, dispatcherID int) (*models.Dispatcher, error) {
	for i := range f.dispatchers {
		if f.dispatchers[i].ID == dispatcherID {
			return &f.dispatchers[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) FindDispatcherByUserID(ctx context.Context, userID int) (*models.Dispatcher, error) {
	for i := range f.dispatchers {
		if f.dispatchers[i].UserID == userID {
			return &f.dispatchers[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) CreateDispatcher(ctx context.Context, userID, areaID int) error {
	f.dispatchers = append(f.dispatchers, models.Dispatcher{
		ID: len(f.dispatchers) + 1, UserID: userID, AreaID: areaID,
	})
	return nil
}

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account and issues a token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, testSecret)

		resp, err := svc.Register(ctx, models.RegisterRequest{
			Username: "stranded_carol", Password: "hunter2hunter2", Role: models.RoleClient,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.User)
		assert.Equal(t, "stranded_carol", resp.User.Username)
		assert.Empty(t, resp.User.PasswordHash)
		assert.NotEmpty(t, resp.AccessToken)

		stored := repo.usersByName["stranded_carol"]
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("token carries the account claims", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, testSecret)

		resp, err := svc.Register(ctx, models.RegisterRequest{
			Username: "dispatch_dan", Password: "hunter2hunter2", Role: models.RoleDispatcher,
			AreaID: intPtr(1),
		})
		require.NoError(t, err)

		claims := &models.JwtCustomClaims{}
		_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, "dispatch_dan", claims.Username)
		assert.Equal(t, models.RoleDispatcher, claims.Role)
	})

	t.Run("dispatcher accounts are bound to their area", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, testSecret)

		resp, err := svc.Register(ctx, models.RegisterRequest{
			Username: "dispatch_dan", Password: "hunter2hunter2", Role: models.RoleDispatcher,
			AreaID: intPtr(2),
		})
		require.NoError(t, err)

		dispatcher, err := repo.FindDispatcherByUserID(ctx, resp.User.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, dispatcher.AreaID)
	})

	t.Run("dispatcher without an area is rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, testSecret)

		_, err := svc.Register(ctx, models.RegisterRequest{
			Username: "dispatch_dan", Password: "hunter2hunter2", Role: models.RoleDispatcher,
		})
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, testSecret)

		_, err := svc.Register(ctx, models.RegisterRequest{
			Username: "stranded_carol", Password: "hunter2hunter2", Role: models.RoleClient,
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, models.RegisterRequest{
			Username: "stranded_carol", Password: "anotherpassword", Role: models.RoleClient,
		})
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *Service) {
		t.Helper()
		_, err := svc.Register(ctx, models.RegisterRequest{
			Username: "stranded_carol", Password: "hunter2hunter2", Role: models.RoleClient,
		})
		require.NoError(t, err)
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), testSecret)
		register(t, svc)

		resp, err := svc.Login(ctx, models.LoginRequest{Username: "stranded_carol", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Empty(t, resp.User.PasswordHash)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), testSecret)
		register(t, svc)

		_, err := svc.Login(ctx, models.LoginRequest{Username: "stranded_carol", Password: "wrong"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown username is rejected the same way", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), testSecret)

		_, err := svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "whatever"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func intPtr(v int) *int { return &v }
