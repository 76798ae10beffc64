package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/repository"
)

// CardProvider resolves a movie ID into a display card.
type CardProvider interface {
	MovieCard(ctx context.Context, tmdbID int) (model.MovieSummary, error)
}

// UserService covers profiles, per-user movie preferences, and the
// social graph around a user.
type UserService struct {
	users   *repository.UserRepo
	follows *repository.FollowRepo
	prefs   *repository.PrefsRepo
	fanout  *FanoutService
	cards   CardProvider
}

func NewUserService(users *repository.UserRepo, follows *repository.FollowRepo, prefs *repository.PrefsRepo, fanout *FanoutService, cards CardProvider) *UserService {
	return &UserService{users: users, follows: follows, prefs: prefs, fanout: fanout, cards: cards}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.PublicProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profileOf(user), nil
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*model.PublicProfile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

func profileOf(u *model.User) *model.PublicProfile {
	return &model.PublicProfile{
		ID:                u.ID,
		Username:          u.Username,
		Bio:               u.Bio,
		Avatar:            u.Avatar,
		FavoriteCharacter: u.FavoriteCharacter,
		FavoriteActor:     u.FavoriteActor,
		TopMovies:         u.TopMovies,
		ProfileBackdrop:   u.ProfileBackdrop,
	}
}

// ListAll returns every account in card form, for people discovery.
func (s *UserService) ListAll(ctx context.Context) ([]model.PublicUser, error) {
	return s.users.ListPublic(ctx)
}

// SearchUsers matches usernames by substring.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]model.PublicUser, error) {
	all, err := s.users.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	matched := []model.PublicUser{}
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Username), query) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// UpdateProfile applies the caller's own edits. Username and email
// changes re-check uniqueness.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && !strings.EqualFold(*req.Username, user.Username) {
		taken, err := s.users.UsernameTaken(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		user.Username = strings.ToLower(*req.Username)
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		taken, err := s.users.EmailTaken(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Backdrop != nil {
		user.ProfileBackdrop = *req.Backdrop
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetTopMovies replaces the profile's showcase shelf, capped at four.
func (s *UserService) SetTopMovies(ctx context.Context, id uuid.UUID, movies []string) error {
	if len(movies) > 4 {
		return fmt.Errorf("%w: top movies holds at most 4", ErrInvalidInput)
	}
	return s.users.SetTopMovies(ctx, id, movies)
}

// ToggleFollow flips the caller's follow edge via the fan-out.
func (s *UserService) ToggleFollow(ctx context.Context, actor model.PublicUser, targetID uuid.UUID) (*model.ToggleResponse, error) {
	if _, err := s.Get(ctx, targetID); err != nil {
		return nil, err
	}
	following, err := s.fanout.ToggleFollow(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResponse{Active: following}, nil
}

func (s *UserService) Following(ctx context.Context, id uuid.UUID) ([]model.PublicUser, error) {
	return s.follows.Following(ctx, id)
}

func (s *UserService) Followers(ctx context.Context, id uuid.UUID) ([]model.PublicUser, error) {
	return s.follows.Followers(ctx, id)
}

func (s *UserService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followeeID)
}

// ToggleWatchlist flips the movie's membership in the caller's
// watchlist.
func (s *UserService) ToggleWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (*model.ToggleResponse, error) {
	in, err := s.prefs.ToggleWatchlist(ctx, userID, tmdbID)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResponse{Active: in}, nil
}

// AddToWatchlist is an idempotent add.
func (s *UserService) AddToWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	return s.prefs.AddToWatchlist(ctx, userID, tmdbID)
}

// RemoveFromWatchlist is an idempotent remove.
func (s *UserService) RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	return s.prefs.RemoveFromWatchlist(ctx, userID, tmdbID)
}

// InWatchlist reports whether the movie sits in the user's watchlist.
func (s *UserService) InWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	return s.prefs.InWatchlist(ctx, userID, tmdbID)
}

// Watchlist returns the user's watchlist as movie cards. Titles whose
// catalog lookup fails are skipped rather than failing the page.
func (s *UserService) Watchlist(ctx context.Context, userID uuid.UUID) ([]model.MovieSummary, error) {
	ids, err := s.prefs.Watchlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, ids), nil
}

// Favorites returns the user's favorite movies as cards, with the
// same skip-on-failure behavior as Watchlist.
func (s *UserService) Favorites(ctx context.Context, userID uuid.UUID) ([]model.MovieSummary, error) {
	ids, err := s.prefs.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, ids), nil
}

func (s *UserService) decorate(ctx context.Context, ids []int) []model.MovieSummary {
	cards := []model.MovieSummary{}
	for _, id := range ids {
		card, err := s.cards.MovieCard(ctx, id)
		if err != nil {
			log.Printf("users: movie card lookup failed for %d, skipping: %v", id, err)
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

func (s *UserService) AddFavorite(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	return s.prefs.AddFavorite(ctx, userID, tmdbID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	return s.prefs.RemoveFavorite(ctx, userID, tmdbID)
}

// SetPoster records the caller's personal poster choice for a movie.
func (s *UserService) SetPoster(ctx context.Context, userID uuid.UUID, tmdbID int, posterURL string) error {
	return s.prefs.SetUserPoster(ctx, userID, tmdbID, posterURL)
}

// Poster returns the caller's personal poster for a movie, or "".
func (s *UserService) Poster(ctx context.Context, userID uuid.UUID, tmdbID int) (string, error) {
	return s.prefs.UserPoster(ctx, userID, tmdbID)
}

// SetAvatar replaces the user's avatar URL.
func (s *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, url string) error {
	return s.users.SetAvatar(ctx, userID, url)
}

// SetBackdrop replaces the user's profile backdrop.
func (s *UserService) SetBackdrop(ctx context.Context, userID uuid.UUID, path string) error {
	return s.users.SetBackdrop(ctx, userID, path)
}

func (s *UserService) RecentGifs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.users.RecentGifs(ctx, userID)
}

// SuggestMovie recommends a movie to another user.
func (s *UserService) SuggestMovie(ctx context.Context, actor model.PublicUser, targetID uuid.UUID, movie model.MovieSummary) error {
	if _, err := s.Get(ctx, targetID); err != nil {
		return err
	}
	s.fanout.SuggestMovie(ctx, actor, targetID, movie)
	return nil
}

// ShareContent points another user at a log or list.
func (s *UserService) ShareContent(ctx context.Context, actor model.PublicUser, targetID uuid.UUID, relatedID, movieTitle, moviePoster string) error {
	if _, err := s.Get(ctx, targetID); err != nil {
		return err
	}
	s.fanout.ShareContent(ctx, actor, targetID, relatedID, movieTitle, moviePoster)
	return nil
}

func (s *UserService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	return s.users.GetStats(ctx)
}
