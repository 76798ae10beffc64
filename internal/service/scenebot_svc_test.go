package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/pkg/clock"
)

func TestUpdateLangPref(t *testing.T) {
	svc := NewSceneBotService(nil, clock.System{}, "k", "")
	userID := uuid.New()

	if got := svc.updateLangPref(userID, "best heist movies?", ""); got != "english" {
		t.Errorf("default = %q, want english", got)
	}
	if got := svc.updateLangPref(userID, "best heist movies?", "Arabic"); got != "arabic" {
		t.Errorf("explicit lang = %q, want arabic", got)
	}

	// An in-message switch sticks for later turns.
	if got := svc.updateLangPref(userID, "please reply in french from now on", ""); got != "french" {
		t.Errorf("override = %q, want french", got)
	}
	if got := svc.updateLangPref(userID, "recommend a thriller", "english"); got != "french" {
		t.Errorf("sticky pref = %q, want french", got)
	}

	// Reset drops the stored preference.
	if got := svc.updateLangPref(userID, "reset language", ""); got != "english" {
		t.Errorf("after reset = %q, want english", got)
	}

	// Preferences are per user.
	other := uuid.New()
	svc.updateLangPref(userID, "reply in arabic", "")
	if got := svc.updateLangPref(other, "hello", ""); got != "english" {
		t.Errorf("other user pref = %q, want english", got)
	}
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	svc := NewSceneBotService(nil, clock.System{}, "k", "")

	_, err := svc.Chat(context.Background(), uuid.New(), "   ", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty message should be rejected, got %v", err)
	}
}

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("auth header = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[0].Content, "arabic") {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(chatResponse{Choices: []struct {
			Message chatMessage `json:"message"`
		}{{Message: chatMessage{Role: "assistant", Content: "مرحبا"}}}})
	}))
	defer srv.Close()

	svc := NewSceneBotService(nil, clock.System{}, "k", srv.URL)
	obs := &observedSeconds{}
	svc.InstrumentWith(obs)

	got, err := svc.Translate(context.Background(), "hello", "arabic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "مرحبا" {
		t.Errorf("translation = %q", got)
	}
	if len(obs.values) != 1 {
		t.Errorf("expected 1 latency observation, got %d", len(obs.values))
	}
}

func TestTranslate_MissingInput(t *testing.T) {
	svc := NewSceneBotService(nil, clock.System{}, "k", "")

	if _, err := svc.Translate(context.Background(), "", "arabic"); !errors.Is(err, ErrInvalidInput) {
		t.Error("empty text should be rejected")
	}
	if _, err := svc.Translate(context.Background(), "hello", ""); !errors.Is(err, ErrInvalidInput) {
		t.Error("empty target should be rejected")
	}
}

func TestComplete_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewSceneBotService(nil, clock.System{}, "k", srv.URL)
	if _, err := svc.Translate(context.Background(), "hello", "french"); err == nil {
		t.Fatal("upstream 429 should surface as an error")
	}
}
