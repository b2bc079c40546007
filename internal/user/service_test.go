package user

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Register(ctx context.Context, params RegisterParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Login(ctx context.Context, email, password string) (string, User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(User), args.Error(2)
}

func (m *MockClient) Profile(ctx context.Context) (*Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockClient) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "credentials.json"))
}

// --- Tests ---

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success persists the session", func(t *testing.T) {
		mockClient := new(MockClient)
		store := newTestStore(t)
		svc := NewService(mockClient, store)

		u := User{ID: "u1", RestaurantName: "Cafe Uno", Email: "a@b.c"}
		mockClient.On("Login", ctx, "a@b.c", "pw").Return("tok-1", u, nil)

		sess, err := svc.Login(ctx, "a@b.c", "pw")
		assert.NoError(t, err)
		assert.True(t, sess.IsAuthenticated)
		assert.Equal(t, "tok-1", sess.Token)
		assert.Equal(t, "tok-1", store.Token())
		mockClient.AssertExpectations(t)
	})

	t.Run("Failure leaves the store untouched", func(t *testing.T) {
		mockClient := new(MockClient)
		store := newTestStore(t)
		svc := NewService(mockClient, store)

		mockClient.On("Login", ctx, "a@b.c", "wrong").Return("", User{}, errors.New("Invalid credentials"))

		_, err := svc.Login(ctx, "a@b.c", "wrong")
		assert.Error(t, err)
		assert.False(t, store.Snapshot().IsAuthenticated)
		assert.Empty(t, store.Token())
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	store := newTestStore(t)
	svc := NewService(mockClient, store)

	assert.NoError(t, store.SetSession(User{ID: "u1"}, "tok"))
	assert.NoError(t, svc.Logout(ctx))
	assert.False(t, store.Snapshot().IsAuthenticated)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(MockClient)
		svc := NewService(mockClient, newTestStore(t))

		params := RegisterParams{RestaurantName: "Cafe Uno", Email: "a@b.c", Password: "pw"}
		mockClient.On("Register", ctx, params).Return("User registered successfully", nil)

		msg, err := svc.Register(ctx, params)
		assert.NoError(t, err)
		assert.Equal(t, "User registered successfully", msg)
	})

	t.Run("Missing email rejected locally", func(t *testing.T) {
		mockClient := new(MockClient)
		svc := NewService(mockClient, newTestStore(t))

		_, err := svc.Register(ctx, RegisterParams{RestaurantName: "X", Password: "pw"})
		assert.ErrorIs(t, err, ErrEmailRequired)
		mockClient.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	newPw := "new-password"

	t.Run("Password confirmation mismatch short-circuits", func(t *testing.T) {
		mockClient := new(MockClient)
		svc := NewService(mockClient, newTestStore(t))

		params := UpdateProfileParams{RestaurantName: "Cafe Uno", Email: "a@b.c", Password: &newPw}
		_, err := svc.UpdateProfile(ctx, params, "different")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
		mockClient.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Matching confirmation goes through", func(t *testing.T) {
		mockClient := new(MockClient)
		svc := NewService(mockClient, newTestStore(t))

		params := UpdateProfileParams{RestaurantName: "Cafe Uno", Email: "a@b.c", Password: &newPw}
		expected := &Profile{RestaurantName: "Cafe Uno", Email: "a@b.c"}
		mockClient.On("UpdateProfile", ctx, params).Return(expected, nil)

		p, err := svc.UpdateProfile(ctx, params, newPw)
		assert.NoError(t, err)
		assert.Equal(t, expected, p)
	})

	t.Run("No password change skips confirmation", func(t *testing.T) {
		mockClient := new(MockClient)
		svc := NewService(mockClient, newTestStore(t))

		params := UpdateProfileParams{RestaurantName: "Cafe Uno", Email: "a@b.c"}
		expected := &Profile{RestaurantName: "Cafe Uno"}
		mockClient.On("UpdateProfile", ctx, params).Return(expected, nil)

		_, err := svc.UpdateProfile(ctx, params, "")
		assert.NoError(t, err)
	})
}
