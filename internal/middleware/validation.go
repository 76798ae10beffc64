package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 20
	MinPasswordLen = 6
	MaxReviewLen   = 5000
	MaxBioLen      = 500
)

var (
	// usernameRe matches handles: lowercase alphanumeric and underscore.
	usernameRe = regexp.MustCompile(`^[a-z0-9_]+$`)
	// emailRe is a light shape check; real validation is the signup mail.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateUsername normalizes and checks a handle.
func ValidateUsername(username string) (string, string) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", "username is required"
	}
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return "", "username must be 3-20 characters"
	}
	if !usernameRe.MatchString(username) {
		return "", "username may only use lowercase letters, digits, and underscore"
	}
	return username, ""
}

// ValidateEmail normalizes and shape-checks an address.
func ValidateEmail(email string) (string, string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", "email is required"
	}
	if !emailRe.MatchString(email) {
		return "", "email is not valid"
	}
	return email, ""
}

// ValidatePassword checks minimum strength.
func ValidatePassword(password string) string {
	if len(password) < MinPasswordLen {
		return "password must be at least 6 characters"
	}
	return ""
}

// ValidateTmdbID parses a catalog ID route parameter.
func ValidateTmdbID(raw string) (int, string) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, "movie id must be a positive integer"
	}
	return id, ""
}

// ValidateRating checks the half-star rating bounds.
func ValidateRating(rating float64) string {
	if rating < 0 || rating > 5 {
		return "rating must be between 0 and 5"
	}
	return ""
}
