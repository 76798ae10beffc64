package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/pkg/clock"
)

// fakeAccounts is an in-memory accountStore keyed by email.
type fakeAccounts struct {
	byEmail map[string]*model.User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]*model.User{}}
}

func (f *fakeAccounts) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (f *fakeAccounts) UsernameTaken(ctx context.Context, username string) (bool, error) {
	for _, u := range f.byEmail {
		if u.Username == strings.ToLower(username) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccounts) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeAccounts) Save(ctx context.Context, user *model.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func testAuthService(accounts *fakeAccounts) *AuthService {
	return &AuthService{
		users:  accounts,
		tokens: NewTokenService("test-secret"),
		clock:  &clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	accounts := newFakeAccounts()
	svc := testAuthService(accounts)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Username: "saud", Email: "saud@scene.app", Password: "hunter22"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, model.RegisterRequest{Username: "saud2", Email: "SAUD@scene.app", Password: "hunter22"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("reused email should conflict, got %v", err)
	}
}

// A fresh account can immediately act in the social graph: register
// two users, follow one from the other, and the follow lands a
// notification in the target's inbox.
func TestRegisterThenFollow(t *testing.T) {
	accounts := newFakeAccounts()
	auth := testAuthService(accounts)
	ctx := context.Background()

	sara, err := auth.Register(ctx, model.RegisterRequest{Username: "Sara", Email: "sara@scene.app", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register sara: %v", err)
	}
	saud, err := auth.Register(ctx, model.RegisterRequest{Username: "saud", Email: "saud@scene.app", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register saud: %v", err)
	}
	if saud.User.ID == sara.User.ID {
		t.Fatal("accounts must get distinct ids")
	}
	if saud.User.Username != "saud" || sara.User.Username != "sara" {
		t.Errorf("usernames should be lowercased, got %q and %q", saud.User.Username, sara.User.Username)
	}

	// The issued token identifies the new account.
	gotID, err := auth.tokens.Verify(saud.Token)
	if err != nil || gotID != saud.User.ID {
		t.Fatalf("token should verify to the new account, got %v (%v)", gotID, err)
	}

	inbox := &fakeInbox{}
	fanout := NewFanoutService(&fakeFollows{}, inbox)

	following, err := fanout.ToggleFollow(ctx, *saud.User, sara.User.ID)
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if !following {
		t.Fatal("first toggle should follow")
	}
	if len(inbox.appended) != 1 {
		t.Fatalf("follow should notify once, got %d", len(inbox.appended))
	}
	n := inbox.appended[0]
	if n.RecipientID != sara.User.ID {
		t.Error("notification should reach the followed user")
	}
	if n.FromUserID == nil || *n.FromUserID != saud.User.ID {
		t.Error("notification should carry the follower id")
	}
	if !strings.Contains(n.Message, "saud") {
		t.Errorf("message should name the follower, got %q", n.Message)
	}
}

func TestCheckResetCode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(ResetCodeTTL)
	stale := now.Add(-time.Second)

	tests := []struct {
		name    string
		user    model.User
		code    string
		wantErr error
	}{
		{
			"valid code",
			model.User{ResetCode: "123456", ResetCodeExpires: &fresh},
			"123456",
			nil,
		},
		{
			"wrong code",
			model.User{ResetCode: "123456", ResetCodeExpires: &fresh},
			"000000",
			ErrUnauthorized,
		},
		{
			"no code issued",
			model.User{},
			"123456",
			ErrUnauthorized,
		},
		{
			"expired code",
			model.User{ResetCode: "123456", ResetCodeExpires: &stale},
			"123456",
			ErrExpired,
		},
		{
			"code without expiry",
			model.User{ResetCode: "123456"},
			"123456",
			ErrExpired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkResetCode(&tt.user, tt.code, now)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckResetCode_ExactExpiryStillValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := model.User{ResetCode: "123456", ResetCodeExpires: &now}

	// The boundary instant itself has not passed yet.
	if err := checkResetCode(&user, "123456", now); err != nil {
		t.Fatalf("code at exact expiry should still work, got %v", err)
	}
}
