// Package httpserver is the HTTP surface of the chat server.
package httpserver

import (
	"chat-rooms/observability"
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HealthSource interface {
	Health() observability.Health
}

// NewRouter mounts the websocket endpoint next to the operational ones.
func NewRouter(log *slog.Logger, ws http.Handler, health HealthSource, metrics http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		// The websocket handler hijacks the connection, its status is meaningless
		Skipper: func(c echo.Context) bool { return c.Path() == "/ws" },
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelDebug
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			log.LogAttrs(context.Background(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.Any("error", v.Error),
			)
			return nil
		},
	}))

	e.GET("/ws", echo.WrapHandler(ws))
	e.GET("/metrics", echo.WrapHandler(metrics))
	e.GET("/health", func(c echo.Context) error {
		h := health.Health()
		status := http.StatusOK
		if h.Status != observability.StatusUp {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, h)
	})
	return e
}
