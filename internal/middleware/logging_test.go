package middleware

import "testing"

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"user id", "/api/users/3f2c9a10-1111-2222-3333-444455556666", "/api/users/:userId"},
		{"user follow", "/api/users/3f2c9a10-1111-2222-3333-444455556666/follow", "/api/users/:userId/follow"},
		{"log id", "/api/logs/3f2c9a10-1111-2222-3333-444455556666", "/api/logs/:logId"},
		{"list like", "/api/lists/abc/like", "/api/lists/:listId/like"},
		{"poll vote", "/api/polls/abc/vote", "/api/polls/:pollId/vote"},
		{"reply like", "/api/logs/reply/abc/like", "/api/logs/reply/:replyId/like"},
		{"logs by user", "/api/logs/user/abc", "/api/logs/user/:userId"},
		{"watchlist toggle", "/api/users/watchlist/550", "/api/users/watchlist/:tmdbId"},
		{"lookup by username", "/api/users/username/saud", "/api/users/username/:username"},
		{"backdrop route", "/api/users/backdrop", "/api/users/backdrop"},
		{"my lists route", "/api/lists/my", "/api/lists/my"},
		{"notification id", "/api/notifications/abc", "/api/notifications/:notificationId"},
		{"notification test route", "/api/notifications/test", "/api/notifications/test"},
		{"movie id", "/api/movies/550", "/api/movies/:tmdbId"},
		{"static path untouched", "/api/stats", "/api/stats"},
		{"health untouched", "/health/ready", "/health/ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.path); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestHashIPForLog(t *testing.T) {
	a := hashIPForLog("203.0.113.7")
	b := hashIPForLog("203.0.113.7")
	c := hashIPForLog("203.0.113.8")

	if a != b {
		t.Error("same IP should hash identically")
	}
	if a == c {
		t.Error("different IPs should hash differently")
	}
	if len(a) != 12 {
		t.Errorf("hash prefix should be 12 chars, got %d", len(a))
	}
	if a == "203.0.113.7" {
		t.Error("raw IP must not appear in the hash")
	}
}
