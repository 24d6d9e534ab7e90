package middleware

import (
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags each request with an id and a request-scoped
// logger carrying it, so every log line of one request can be correlated.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new request id middleware.
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Handle assigns the request id, echoes it back in the X-Request-Id header
// and stores a scoped logger in the request context.
func (m *RequestIDMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scopedLogger := m.logger.With(slog.String("requestID", requestID))
		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, scopedLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
