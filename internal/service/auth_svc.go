package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/repository"
	"github.com/PrintSaud/scene-backend/pkg/clock"
)

// ResetCodeTTL is how long a password reset code stays usable.
const ResetCodeTTL = 10 * time.Minute

// accountStore is the account storage surface auth needs.
// *repository.UserRepo satisfies it.
type accountStore interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// AuthService handles account lifecycle: registration, login, Google
// sign-in and the password reset flow.
type AuthService struct {
	users          accountStore
	tokens         *TokenService
	clock          clock.Clock
	googleClientID string
}

func NewAuthService(users *repository.UserRepo, tokens *TokenService, clk clock.Clock, googleClientID string) *AuthService {
	return &AuthService{users: users, tokens: tokens, clock: clk, googleClientID: googleClientID}
}

// Register creates a local account. Email and username are matched
// case-insensitively against existing accounts.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	taken, err := s.users.EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already in use", ErrConflict)
	}

	taken, err = s.users.UsernameTaken(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     strings.ToLower(req.Username),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Avatar:       req.Avatar,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse("Registered successfully", user)
}

// Login verifies an email/password pair.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: account uses Google sign-in", ErrInvalidInput)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
	}

	return s.authResponse("Logged in", user)
}

// GoogleLogin validates a Google ID token and signs the user in,
// creating an account on first sight.
func (s *AuthService) GoogleLogin(ctx context.Context, rawIDToken string) (*model.AuthResponse, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, s.googleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google token rejected", ErrInvalidInput)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: google token has no email", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		avatar, _ := payload.Claims["picture"].(string)
		user = &model.User{
			GoogleID: payload.Subject,
			Username: s.usernameFromEmail(ctx, email),
			Email:    strings.ToLower(email),
			Avatar:   avatar,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.authResponse("Logged in with Google", user)
}

// usernameFromEmail derives a free username from the address local
// part, appending digits until one is available.
func (s *AuthService) usernameFromEmail(ctx context.Context, email string) string {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, base)
	if len(base) < 3 {
		base = "user" + base
	}
	if len(base) > 16 {
		base = base[:16]
	}

	candidate := base
	for i := 0; i < 100; i++ {
		taken, err := s.users.UsernameTaken(ctx, candidate)
		if err != nil || !taken {
			return candidate
		}
		n, _ := rand.Int(rand.Reader, big.NewInt(10000))
		candidate = fmt.Sprintf("%s%d", base, n)
	}
	return candidate
}

// UsernameAvailable reports whether no account holds the username.
func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.users.UsernameTaken(ctx, username)
	return !taken, err
}

// EmailAvailable reports whether no account holds the email.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.EmailTaken(ctx, email)
	return !taken, err
}

// RequestReset generates a 6-digit reset code for the account. The
// code is logged rather than mailed; delivery is an operator concern.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	expires := s.clock.Now().Add(ResetCodeTTL)
	user.ResetCode = code
	user.ResetCodeExpires = &expires
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	log.Printf("auth: reset code for %s: %s", user.Email, code)
	return nil
}

// VerifyReset checks a reset code without consuming it.
func (s *AuthService) VerifyReset(ctx context.Context, email, code string) error {
	_, err := s.matchResetCode(ctx, email, code)
	return err
}

// CompleteReset sets a new password when the code matches and has not
// expired, then clears the code so it cannot be replayed.
func (s *AuthService) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	user, err := s.matchResetCode(ctx, email, code)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetCode = ""
	user.ResetCodeExpires = nil
	return s.users.Save(ctx, user)
}

func (s *AuthService) matchResetCode(ctx context.Context, email, code string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := checkResetCode(user, code, s.clock.Now()); err != nil {
		return nil, err
	}
	return user, nil
}

func checkResetCode(user *model.User, code string, now time.Time) error {
	if user.ResetCode == "" || user.ResetCode != code {
		return fmt.Errorf("%w: incorrect reset code", ErrUnauthorized)
	}
	if user.ResetCodeExpires == nil || now.After(*user.ResetCodeExpires) {
		return fmt.Errorf("%w: reset code expired", ErrExpired)
	}
	return nil
}

func (s *AuthService) authResponse(message string, user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		Message: message,
		Token:   token,
		User: &model.PublicUser{
			ID:       user.ID,
			Username: user.Username,
			Avatar:   user.Avatar,
		},
	}, nil
}
