package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"quoteScope/internal/metrics"
	"quoteScope/internal/model"
	"quoteScope/internal/service"
)

// maxBodyBytes bounds tool argument payloads.
const maxBodyBytes = 64 << 10

// Handlers contains the dependencies of the HTTP endpoints.
type Handlers struct {
	Engine         Engine
	RequestTimeout time.Duration
	DevMode        bool
	Logger         *zap.Logger
}

// withTimeout bounds a request, defaulting to 15 seconds.
func (h *Handlers) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	d := h.RequestTimeout
	if d <= 0 {
		d = 15 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

func (h *Handlers) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// Health reports liveness.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// ListTools returns the tool table.
func (h *Handlers) ListTools(c echo.Context) error {
	infos := make([]ToolInfo, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, t.info)
	}
	return c.JSON(http.StatusOK, ToolsResponse{Tools: infos})
}

// ListTokens returns the supported token table.
func (h *Handlers) ListTokens(c echo.Context) error {
	return c.JSON(http.StatusOK, TokensResponse{Tokens: h.Engine.Registry().Tokens()})
}

// CallTool dispatches a JSON argument object to the named tool.
func (h *Handlers) CallTool(c echo.Context) error {
	name := c.Param("name")
	t, ok := findTool(name)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorBody{
			Type:    "UnknownTool",
			Message: fmt.Sprintf("no tool named %q", name),
		}})
	}

	args, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return h.fail(c, name, time.Now(), model.ErrInvalidRequest("read request body"))
	}

	ctx, cancel := h.withTimeout(c.Request().Context())
	defer cancel()

	start := time.Now()
	result, err := t.call(ctx, h.Engine, args)
	if err != nil {
		return h.fail(c, name, start, err)
	}

	metrics.ObserveRequest(name, "ok", time.Since(start))
	return c.JSON(http.StatusOK, ToolResponse{Result: result})
}

func (h *Handlers) fail(c echo.Context, name string, start time.Time, err error) error {
	svcErr := service.Translate(err)
	metrics.ObserveRequest(name, string(svcErr.Kind), time.Since(start))

	status := StatusFor(svcErr.Kind)
	if status >= http.StatusInternalServerError {
		h.logger().Warn("tool failed", zap.String("tool", name), zap.Int("status", status), zap.Error(err))
	}
	return c.JSON(status, ErrorResponse{Error: errorBody(svcErr, h.DevMode)})
}
