package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"timetrack/internal/auth"
	"timetrack/internal/config"
	"timetrack/internal/handler"
	"timetrack/internal/metrics"
)

var errRevokedToken = errors.New("token has been revoked")

// Handlers groups the route handlers.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Event    *handler.EventHandler
	User     *handler.UserHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	m *metrics.Metrics,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(m.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", m.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login, h.Auth.RequireCredentials)

	// Secured routes (require "Authorization: JWT <token>")
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + auth.TokenScheme + " ",
		ContextKey:  handler.ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if tokenStore.IsRevoked(c.Request().Context(), claims.ID) {
				return nil, errRevokedToken
			}
			return claims, nil
		},
	}))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/users/me", h.User.Me)

	// Category routes
	secured.POST("/categories/add", h.Category.Add)
	secured.DELETE("/categories/remove", h.Category.Remove)
	secured.PUT("/categories/modify", h.Category.Modify)
	secured.GET("/categories/list", h.Category.List)

	// Event routes
	secured.POST("/events/submit", h.Event.Submit)
	secured.POST("/events/insert", h.Event.Insert)
	secured.DELETE("/events/remove", h.Event.Remove)
	secured.GET("/events/query", h.Event.Query)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
