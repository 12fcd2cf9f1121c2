package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if len(s.config.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: s.config.AllowedOrigins}))
	} else {
		s.echo.Use(middleware.CORS())
	}

	s.echo.Use(s.middleware.Metrics.CollectHTTPMetrics("/metrics"))
	s.echo.Use(s.middleware.Logging.RequestLogging())
	if s.middleware.RateLimit != nil {
		s.echo.Use(s.middleware.RateLimit.Handler())
	}
}
