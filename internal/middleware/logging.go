package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger zerolog.Logger

// InitLogger sets up the global zerolog logger with structured JSON output.
// Level is parsed from the given string (e.g. "debug", "info", "warn", "error").
func InitLogger(level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Logger()
}

// hashIPForLog produces a short, irreversible hash prefix of the IP address
// for log correlation without storing raw PII.
func hashIPForLog(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])[:12]
}

// literalSegments are fixed route words that can follow an ID-bearing
// segment and must never be mistaken for an ID.
var literalSegments = map[string]bool{
	"reply": true, "replies": true, "like": true, "save": true,
	"follow": true, "following": true, "followers": true,
	"watchlist": true, "favorites": true, "poster": true,
	"movies": true, "movie": true, "user": true, "feed": true,
	"vote": true, "suggest": true, "share": true, "read": true,
	"unread-count": true, "test": true, "trending": true, "daily": true,
	"search": true, "popular": true, "friends": true, "saved": true,
	"username": true, "top-movies": true, "gifs": true, "recent": true,
	"backdrop": true, "avatar": true, "my": true,
}

// sanitizePath replaces dynamic path segments (user, log, list, poll,
// reply and notification IDs) with placeholders so PII is never
// written to logs.
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	orig := strings.Split(path, "/")
	for i := range parts {
		if i == 0 || literalSegments[orig[i]] {
			continue
		}
		switch orig[i-1] {
		case "users", "user":
			parts[i] = ":userId"
		case "username":
			parts[i] = ":username"
		case "logs", "log":
			parts[i] = ":logId"
		case "lists":
			parts[i] = ":listId"
		case "polls":
			parts[i] = ":pollId"
		case "replies", "reply":
			parts[i] = ":replyId"
		case "notifications":
			parts[i] = ":notificationId"
		case "movie", "movies", "watchlist", "favorites", "poster":
			parts[i] = ":tmdbId"
		}
	}
	return strings.Join(parts, "/")
}

// NewRequestLogger returns a Fiber middleware that logs each request as
// structured JSON via zerolog.
// Privacy: raw IPs are hashed; dynamic path segments are sanitized.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := Logger.Info()
		if status >= 500 {
			evt = Logger.Error()
		} else if status >= 400 {
			evt = Logger.Warn()
		}

		evt.
			Str("method", c.Method()).
			Str("path", sanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hashIPForLog(c.IP())).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}
