package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/service"
)

const identityContextKey = "identity"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	DisplayName string `json:"displayName" validate:"max=255"`
	Password    string `json:"password" validate:"max=72"`
	TimeZone    string `json:"timeZone" validate:"max=64"`
}

var registerMessages = map[string]string{
	"Email":       "You must enter a valid email address.",
	"DisplayName": "Display name is too long.",
	"Password":    "Password is too long.",
	"TimeZone":    "Time zone is too long.",
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token, already prefixed with its scheme, and the user.
type AuthResponse struct {
	Token string         `json:"token"`
	User  model.UserInfo `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	input := service.RegisterInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		TimeZone:    req.TimeZone,
	}
	// Missing fields are reported before format and length problems.
	if err := input.Validate(); err != nil {
		return fail(err)
	}
	if err := validateRequest(c, &req, registerMessages); err != nil {
		return err
	}

	token, info, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Token: auth.WithScheme(token),
		User:  info,
	})
}

// RequireCredentials authenticates the email and password in the request body and
// stores the user for the next handler. Bad credentials are a 401.
func (h *AuthHandler) RequireCredentials(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "invalid request body",
				Code:  "INVALID_BODY",
			})
		}

		user, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		if err != nil {
			return err
		}

		c.Set(identityContextKey, user.Info())
		return next(c)
	}
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	info, ok := c.Get(identityContextKey).(model.UserInfo)
	if !ok {
		return echo.ErrUnauthorized
	}

	token, err := h.authService.Login(c.Request().Context(), info)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token: auth.WithScheme(token),
		User:  info,
	})
}

// Logout godoc
// @Summary Revoke the presented session token
// @Tags auth
// @Produce json
// @Security JWTAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return echo.ErrUnauthorized
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return success(c, "Logged out")
}
