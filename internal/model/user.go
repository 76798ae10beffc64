package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is empty for
// Google-authenticated users.
type User struct {
	ID                uuid.UUID  `json:"_id"`
	GoogleID          string     `json:"-"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Bio               string     `json:"bio,omitempty"`
	Avatar            string     `json:"avatar,omitempty"`
	ProfileBackdrop   string     `json:"profileBackdrop,omitempty"`
	FavoriteCharacter string     `json:"favoriteCharacter,omitempty"`
	FavoriteActor     string     `json:"favoriteActor,omitempty"`
	TopMovies         []string   `json:"topMovies"`
	ResetCode         string     `json:"-"`
	ResetCodeExpires  *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// PublicUser is the subset of a user exposed to other users.
type PublicUser struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar,omitempty"`
}

// PublicProfile is the profile page view of another user.
type PublicProfile struct {
	ID                uuid.UUID `json:"_id"`
	Username          string    `json:"username"`
	Bio               string    `json:"bio,omitempty"`
	Avatar            string    `json:"avatar,omitempty"`
	FavoriteCharacter string    `json:"favoriteCharacter,omitempty"`
	FavoriteActor     string    `json:"favoriteActor,omitempty"`
	TopMovies         []string  `json:"topMovies"`
	ProfileBackdrop   string    `json:"profileBackdrop,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register/login/google.
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *PublicUser `json:"user"`
}

// UpdateProfileRequest is the body of PUT /api/auth/profile and
// PATCH /api/users/:id. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
	Backdrop *string `json:"backdrop"`
}
