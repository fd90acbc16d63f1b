package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ordering/internal/adapters/in/http/auth"
	"ordering/internal/adapters/in/http/openapi"
)

// RouterConfig carries what NewRouter needs besides the server itself.
type RouterConfig struct {
	Issuer   *auth.Issuer
	Contract *openapi3.T
	Metrics  http.Handler
	Logger   *slog.Logger
}

// NewRouter builds the echo instance: operational endpoints at the root and
// the authenticated, contract-validated API under /api/v1.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	validate, err := openapi.ValidationMiddleware(cfg.Contract)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			cfg.Logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}
	e.GET("/openapi.yml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openapi.Spec())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yml")))

	api := e.Group("/api/v1", auth.Middleware(cfg.Issuer), validate)
	s.Register(api)

	return e, nil
}
