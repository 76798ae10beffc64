package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Register handles POST /api/auth/register and its /signup alias.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	username, errMsg := middleware.ValidateUsername(req.Username)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Username = username

	email, errMsg := middleware.ValidateEmail(req.Email)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Email = email

	if errMsg := middleware.ValidatePassword(req.Password); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.auth.Register(c.Context(), req)
	if err != nil {
		return serviceError(c, err, "Failed to register")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "email and password are required")
	}

	resp, err := h.auth.Login(c.Context(), req)
	if err != nil {
		return serviceError(c, err, "Failed to log in")
	}
	return c.JSON(resp)
}

// Google handles POST /api/auth/google
func (h *AuthHandler) Google(c fiber.Ctx) error {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.IDToken == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "idToken is required")
	}

	resp, err := h.auth.GoogleLogin(c.Context(), req.IDToken)
	if err != nil {
		return serviceError(c, err, "Google sign-in failed")
	}
	return c.JSON(resp)
}

// Me handles GET /api/auth/profile
func (h *AuthHandler) Me(c fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c fiber.Ctx) error {
	var req model.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.Username != nil {
		username, errMsg := middleware.ValidateUsername(*req.Username)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.Username = &username
	}
	if req.Email != nil {
		email, errMsg := middleware.ValidateEmail(*req.Email)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.Email = &email
	}
	if req.Password != nil {
		if errMsg := middleware.ValidatePassword(*req.Password); errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	user, err := h.users.UpdateProfile(c.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return serviceError(c, err, "Failed to update profile")
	}
	return c.JSON(user)
}

// CheckUsername handles GET /api/auth/check-username
func (h *AuthHandler) CheckUsername(c fiber.Ctx) error {
	username, errMsg := middleware.ValidateUsername(c.Query("username"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	available, err := h.auth.UsernameAvailable(c.Context(), username)
	if err != nil {
		return serviceError(c, err, "Failed to check username")
	}
	return c.JSON(fiber.Map{"available": available})
}

// CheckEmail handles GET /api/auth/check-email
func (h *AuthHandler) CheckEmail(c fiber.Ctx) error {
	email, errMsg := middleware.ValidateEmail(c.Query("email"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	available, err := h.auth.EmailAvailable(c.Context(), email)
	if err != nil {
		return serviceError(c, err, "Failed to check email")
	}
	return c.JSON(fiber.Map{"available": available})
}

// Ping handles GET /api/auth/ping. It answers when the caller's token
// is still good, so clients can probe their session cheaply.
func (h *AuthHandler) Ping(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Email == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "email is required")
	}

	if err := h.auth.RequestReset(c.Context(), req.Email); err != nil {
		return serviceError(c, err, "Failed to start password reset")
	}
	return c.JSON(fiber.Map{"message": "Reset code sent"})
}

// VerifyResetCode handles POST /api/auth/verify-reset-code
func (h *AuthHandler) VerifyResetCode(c fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Email == "" || req.Code == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "email and code are required")
	}

	if err := h.auth.VerifyReset(c.Context(), req.Email, req.Code); err != nil {
		return serviceError(c, err, "Failed to verify reset code")
	}
	return c.JSON(fiber.Map{"message": "Code verified"})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Email == "" || req.Code == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "email, code, and password are required")
	}
	if errMsg := middleware.ValidatePassword(req.Password); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.auth.CompleteReset(c.Context(), req.Email, req.Code, req.Password); err != nil {
		return serviceError(c, err, "Failed to reset password")
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
