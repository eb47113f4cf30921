package service_test

import (
	"errors"
	"testing"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testUser = domain.User{UserID: "u1", Email: "rider@example.com"}

func newSignedInSession(
	t *testing.T, favs *MockFavoritesGateway, stored []domain.Favorite,
) *service.SessionService {
	t.Helper()

	auth := new(MockAuthGateway)
	auth.On("Me", t.Context()).Return(testUser, nil)
	favs.On("FetchFavorites", t.Context()).Return(stored, nil)

	s := service.NewSession(auth, favs)
	require.NoError(t, s.Refresh(t.Context()))
	return s
}

func TestSessionRefresh(t *testing.T) {

	t.Run("LoadsUserAndFavorites", func(t *testing.T) {
		favs := new(MockFavoritesGateway)
		s := newSignedInSession(t, favs, []domain.Favorite{
			{Name: "Custom X", Color: "black"},
		})

		u, ok := s.User()
		assert.True(t, ok)
		assert.Equal(t, testUser, u)
		assert.True(t, s.IsFavorite("Custom X", "black"))
	})

	t.Run("MeFailureClearsSession", func(t *testing.T) {
		auth := new(MockAuthGateway)
		auth.On("Me", t.Context()).
			Return(domain.User{}, errors.New("no cookie"))

		s := service.NewSession(auth, new(MockFavoritesGateway))
		require.Error(t, s.Refresh(t.Context()))

		_, ok := s.User()
		assert.False(t, ok)
	})
}

func TestSessionLoginLogout(t *testing.T) {
	creds := domain.Credentials{Email: "rider@example.com", Password: "pw"}

	t.Run("LoginRefreshesProfile", func(t *testing.T) {
		auth := new(MockAuthGateway)
		auth.On("Login", t.Context(), creds).Return(nil)
		auth.On("Me", t.Context()).Return(testUser, nil)

		favs := new(MockFavoritesGateway)
		favs.On("FetchFavorites", t.Context()).
			Return([]domain.Favorite(nil), nil)

		s := service.NewSession(auth, favs)
		require.NoError(t, s.Login(t.Context(), creds))

		_, ok := s.User()
		assert.True(t, ok)
		auth.AssertExpectations(t)
	})

	t.Run("LoginFailureWrapsError", func(t *testing.T) {
		loginErr := errors.New("wrong password")
		auth := new(MockAuthGateway)
		auth.On("Login", t.Context(), creds).Return(loginErr)

		s := service.NewSession(auth, new(MockFavoritesGateway))
		err := s.Login(t.Context(), creds)
		require.ErrorIs(t, err, loginErr)
		auth.AssertNotCalled(t, "Me", mock.Anything)
	})

	t.Run("LogoutClearsLocalStateEvenOnServerError", func(t *testing.T) {
		auth := new(MockAuthGateway)
		auth.On("Me", t.Context()).Return(testUser, nil)
		auth.On("Logout", t.Context()).Return(errors.New("boom"))

		favs := new(MockFavoritesGateway)
		favs.On("FetchFavorites", t.Context()).
			Return([]domain.Favorite(nil), nil)

		s := service.NewSession(auth, favs)
		require.NoError(t, s.Refresh(t.Context()))

		require.Error(t, s.Logout(t.Context()))
		_, ok := s.User()
		assert.False(t, ok)
	})

	t.Run("RegisterLogsIn", func(t *testing.T) {
		auth := new(MockAuthGateway)
		auth.On("Register", t.Context(), creds).Return(nil)
		auth.On("Login", t.Context(), creds).Return(nil)
		auth.On("Me", t.Context()).Return(testUser, nil)

		favs := new(MockFavoritesGateway)
		favs.On("FetchFavorites", t.Context()).
			Return([]domain.Favorite(nil), nil)

		s := service.NewSession(auth, favs)
		require.NoError(t, s.Register(t.Context(), creds))
		auth.AssertExpectations(t)
	})
}

func TestFavorites(t *testing.T) {
	board := domain.Product{ProductID: "p1", Name: "Custom X", Color: "Black"}

	t.Run("AddThenIsFavorite", func(t *testing.T) {
		favs := new(MockFavoritesGateway)
		s := newSignedInSession(t, favs, nil)

		favs.On("AddFavorite", t.Context(), board).Return(nil)
		require.NoError(t, s.AddFavorite(t.Context(), board))

		assert.True(t, s.IsFavorite("custom x", "BLACK"))
		assert.False(t, s.IsFavorite("Custom X", "White"))
	})

	t.Run("AddDeduplicatesByKey", func(t *testing.T) {
		favs := new(MockFavoritesGateway)
		s := newSignedInSession(t, favs, []domain.Favorite{
			{Name: "custom x", Color: "black"},
			{Name: "Flight Attendant", Color: "wood"},
		})

		favs.On("AddFavorite", t.Context(), board).Return(nil)
		require.NoError(t, s.AddFavorite(t.Context(), board))

		list := s.Favorites()
		require.Len(t, list, 2)
		assert.Equal(t, "Custom X", list[0].Name)
	})

	t.Run("RemoveSoftDeletes", func(t *testing.T) {
		favs := new(MockFavoritesGateway)
		s := newSignedInSession(t, favs, []domain.Favorite{
			{Name: "Custom X", Color: "Black"},
		})

		favs.On("RemoveFavorite", t.Context(), "Custom X", "Black").Return(nil)
		require.NoError(t, s.RemoveFavorite(t.Context(), "Custom X", "Black"))

		assert.False(t, s.IsFavorite("Custom X", "Black"))

		list := s.Favorites()
		require.Len(t, list, 1)
		assert.True(t, list[0].Removed)
	})

	t.Run("ReAddAfterRemove", func(t *testing.T) {
		favs := new(MockFavoritesGateway)
		s := newSignedInSession(t, favs, []domain.Favorite{
			{Name: "Custom X", Color: "Black"},
		})

		favs.On("RemoveFavorite", t.Context(), "Custom X", "Black").Return(nil)
		favs.On("AddFavorite", t.Context(), board).Return(nil)

		require.NoError(t, s.RemoveFavorite(t.Context(), "Custom X", "Black"))
		require.NoError(t, s.AddFavorite(t.Context(), board))

		assert.True(t, s.IsFavorite("Custom X", "Black"))
		require.Len(t, s.Favorites(), 1)
		assert.False(t, s.Favorites()[0].Removed)
	})

	t.Run("ServerErrorLeavesListUntouched", func(t *testing.T) {
		favs := new(MockFavoritesGateway)
		s := newSignedInSession(t, favs, nil)

		favs.On("AddFavorite", t.Context(), board).
			Return(errors.New("boom"))
		require.Error(t, s.AddFavorite(t.Context(), board))
		assert.False(t, s.IsFavorite("Custom X", "Black"))
	})
}

func TestHandleSessionExpired(t *testing.T) {
	favs := new(MockFavoritesGateway)
	s := newSignedInSession(t, favs, []domain.Favorite{
		{Name: "Custom X", Color: "Black"},
	})

	s.HandleSessionExpired()

	_, ok := s.User()
	assert.False(t, ok)
	assert.Empty(t, s.Favorites())
}
