package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/handler"
	"github.com/PrintSaud/scene-backend/internal/service"
)

var metricsOnce sync.Once

// testApp builds the full route table with empty handlers. Handlers
// validate input before touching their services, so requests that fail
// auth or validation exercise routing without any backing stores.
func testApp() *fiber.App {
	metricsOnce.Do(func() { handler.InitMetrics(nil, nil) })

	h := &Handlers{
		Auth:         &handler.AuthHandler{},
		User:         &handler.UserHandler{},
		Watchlist:    &handler.WatchlistHandler{},
		Log:          &handler.LogHandler{},
		List:         &handler.ListHandler{},
		Poll:         &handler.PollHandler{},
		Notification: &handler.NotificationHandler{},
		Movie:        &handler.MovieHandler{},
		Search:       &handler.SearchHandler{},
		Home:         &handler.HomeHandler{},
		SceneBot:     &handler.SceneBotHandler{},
		Upload:       &handler.UploadHandler{},
		Stats:        &handler.StatsHandler{},
		Health:       &handler.HealthHandler{},
		Realtime:     &handler.RealtimeHandler{},
	}

	app := fiber.New()
	Setup(app, h, service.NewTokenService("test-secret"), nil, "*")
	return app
}

func TestRouteRegistration(t *testing.T) {
	app := testApp()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		// Both spellings of account creation reach the same handler:
		// an empty body fails field validation, not routing.
		{"register", http.MethodPost, "/api/auth/register", "{}", http.StatusBadRequest},
		{"signup alias", http.MethodPost, "/api/auth/signup", "{}", http.StatusBadRequest},
		// Mark-all-read answers both verbs; without a token the guard
		// rejects it, proving the route exists.
		{"mark read patch", http.MethodPatch, "/api/notifications/read", "", http.StatusUnauthorized},
		{"mark read post", http.MethodPost, "/api/notifications/read", "", http.StatusUnauthorized},
		{"watchlist put", http.MethodPut, "/api/users/watchlist/550", "", http.StatusUnauthorized},
		{"watchlist delete", http.MethodDelete, "/api/users/watchlist/550", "", http.StatusUnauthorized},
		{"watchlist status", http.MethodGet, "/api/users/watchlist/550", "", http.StatusUnauthorized},
		{"backdrop get", http.MethodGet, "/api/users/backdrop", "", http.StatusUnauthorized},
		{"backdrop put", http.MethodPut, "/api/users/backdrop", "", http.StatusUnauthorized},
		{"avatar put", http.MethodPut, "/api/users/avatar", "", http.StatusUnauthorized},
		{"my lists", http.MethodGet, "/api/lists/my", "", http.StatusUnauthorized},
		{"auth ping", http.MethodGet, "/api/auth/ping", "", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestUnauthorizedEnvelope(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "NO_TOKEN" {
		t.Errorf("code = %q, want NO_TOKEN", body.Error.Code)
	}
}
