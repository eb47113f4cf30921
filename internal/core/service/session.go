package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/peakgear/storefront/internal/core/port"
)

// SessionService is the single source of truth for who is signed
// in, plus the favorites cache fetched alongside the profile.
type SessionService struct {
	mu        sync.Mutex
	auth      port.AuthGateway
	favs      port.FavoritesGateway
	user      *domain.User
	favorites []domain.Favorite
}

func NewSession(
	auth port.AuthGateway, favs port.FavoritesGateway,
) *SessionService {
	return &SessionService{auth: auth, favs: favs}
}

// User returns the signed-in user, if any.
func (s *SessionService) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Refresh re-derives the session from the server's "me" call and
// reloads favorites. On failure the local session is cleared.
func (s *SessionService) Refresh(ctx context.Context) error {
	const op = "SessionService.Refresh"

	u, err := s.auth.Me(ctx)
	if err != nil {
		s.reset()
		return fmt.Errorf("%s: %w", op, err)
	}

	fs, err := s.favs.FetchFavorites(ctx)
	if err != nil {
		slog.With("op", op).Warn("failed to fetch favorites", "err", err)
		fs = nil
	}

	s.mu.Lock()
	s.user = &u
	s.favorites = fs
	s.mu.Unlock()
	return nil
}

func (s *SessionService) Login(ctx context.Context, cr domain.Credentials) error {
	const op = "SessionService.Login"

	if err := s.auth.Login(ctx, cr); err != nil {
		return fmt.Errorf("%s: login failed: %w", op, err)
	}
	return s.Refresh(ctx)
}

// Logout clears the local session unconditionally, even when the
// server call fails.
func (s *SessionService) Logout(ctx context.Context) error {
	const op = "SessionService.Logout"

	err := s.auth.Logout(ctx)
	s.reset()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Register creates the account and immediately signs it in.
func (s *SessionService) Register(ctx context.Context, cr domain.Credentials) error {
	const op = "SessionService.Register"

	if err := s.auth.Register(ctx, cr); err != nil {
		return fmt.Errorf("%s: registration failed: %w", op, err)
	}
	return s.Login(ctx, cr)
}

// AddFavorite stores the favorite on the server, then prepends it
// locally, de-duplicating by the normalized name|color key.
func (s *SessionService) AddFavorite(ctx context.Context, p domain.Product) error {
	const op = "SessionService.AddFavorite"

	if err := s.favs.AddFavorite(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fav := domain.Favorite{Name: p.Name, Color: p.Color, Product: p}
	key := fav.Key()

	s.mu.Lock()
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.Key() != key {
			kept = append(kept, f)
		}
	}
	s.favorites = append([]domain.Favorite{fav}, kept...)
	s.mu.Unlock()
	return nil
}

// RemoveFavorite removes on the server and soft-deletes locally:
// matching entries stay in the list with the removed marker so the
// caller can tell "being removed" from "absent".
func (s *SessionService) RemoveFavorite(ctx context.Context, name, color string) error {
	const op = "SessionService.RemoveFavorite"

	if err := s.favs.RemoveFavorite(ctx, name, color); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := domain.FavoriteKey(name, color)
	s.mu.Lock()
	for i := range s.favorites {
		if s.favorites[i].Key() == key {
			s.favorites[i].Removed = true
		}
	}
	s.mu.Unlock()
	return nil
}

// IsFavorite reports whether a non-removed entry matches the
// normalized key.
func (s *SessionService) IsFavorite(name, color string) bool {
	key := domain.FavoriteKey(name, color)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if !f.Removed && f.Key() == key {
			return true
		}
	}
	return false
}

// Favorites returns a copy of the cached list, soft-deleted
// entries included.
func (s *SessionService) Favorites() []domain.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs := make([]domain.Favorite, len(s.favorites))
	copy(fs, s.favorites)
	return fs
}

// HandleSessionExpired resets the cached session. Wired to the API
// client's session-expired hook.
func (s *SessionService) HandleSessionExpired() {
	s.reset()
	slog.Info("session expired, local state cleared")
}

func (s *SessionService) reset() {
	s.mu.Lock()
	s.user = nil
	s.favorites = nil
	s.mu.Unlock()
}
