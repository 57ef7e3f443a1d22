package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimitRPS = 20
	rateLimiterTTL      = 3 * time.Minute
)

type RouterConfig struct {
	// RateLimitRPS bounds order submissions per client IP. Zero disables the limiter.
	RateLimitRPS float64
}

// NewRouter builds the echo instance with every route of the API registered.
func NewRouter(server *Server, cfg RouterConfig, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "http")))

	intake := []echo.MiddlewareFunc{}
	if cfg.RateLimitRPS > 0 {
		intake = append(intake, rateLimiter(cfg.RateLimitRPS))
	}

	e.GET("/health", server.Health)

	e.POST("/orders", server.SubmitOrder, intake...)
	e.GET("/orders/:orderId/status", server.GetOrderStatus)

	e.GET("/:hawkerCenter/:stall/waitTime", server.GetWaitTime)
	e.GET("/:hawkerCenter/:stall/totalEarned", server.GetTotalEarned)
	e.GET("/:hawkerCenter/:stall/orders", server.GetStallOrders)
	e.PATCH("/:hawkerCenter/:stall/orders/:orderId/:dishName/complete", server.CompleteDish)

	e.GET("/activity/logs", server.GetCurrentWeekActivityLogs)
	e.GET("/activity/logs/:weekId", server.GetActivityLogs)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}

func rateLimiter(rps float64) echo.MiddlewareFunc {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: rateLimiterTTL,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "Client identifier unavailable"})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, Error{Code: http.StatusTooManyRequests, Message: "Too many requests"})
		},
	})
}
