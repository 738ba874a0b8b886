package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/chirag127/Image-Insight-AI/internal/auth"
	apperrors "github.com/chirag127/Image-Insight-AI/internal/errors"
	"github.com/chirag127/Image-Insight-AI/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	analysisHandler *handler.AnalysisHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Uniform failure envelope for middleware errors, unknown routes and
	// recovered panics.
	e.HTTPErrorHandler = errorHandler

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid, unrevoked bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: parseToken(jwtService, tokenStore),
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthenticated)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/auth/logout", authHandler.Logout)

	secured.POST("/analyze", analysisHandler.Analyze)
	secured.GET("/history", analysisHandler.History)
	secured.GET("/history/:id", analysisHandler.Get)
	secured.DELETE("/history/:id", analysisHandler.Delete)
}

// parseToken validates the bearer token and rejects revoked token IDs. The
// returned claims end up under the "user" context key.
func parseToken(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) func(c echo.Context, token string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return nil, apperrors.ErrNotAuthenticated
		}
		revoked, err := tokenStore.IsRevoked(c.Request().Context(), claims.ID)
		if err != nil || revoked {
			return nil, apperrors.ErrNotAuthenticated
		}
		return claims, nil
	}
}

// errorHandler renders every unhandled error as the {success, message}
// envelope without leaking internals.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := fmt.Sprintf("%v", echoErr.Message)
		if echoErr.Code == http.StatusNotFound {
			message = "Route not found"
		}
		_ = c.JSON(echoErr.Code, apperrors.NewErrorResponse(message))
		return
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
