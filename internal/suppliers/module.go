// Package suppliers wires the supplier discovery bounded context: pincode
// resolution, AI-backed synthesis with a generated fallback, and the HTTP
// surface.
package suppliers

import (
	"time"

	apphttp "agriportal_backend/internal/http"
	"agriportal_backend/internal/suppliers/handler"
	"agriportal_backend/internal/suppliers/pincode"
	"agriportal_backend/internal/suppliers/service"
	"agriportal_backend/platform/events"
	"agriportal_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module wires the suppliers routes.
type Module struct {
	handler *handler.Handler
}

// NewModule builds the suppliers module. completer and cache may be nil;
// the module then serves the static table and generator only.
func NewModule(completer service.Completer, cache *redis.Client, bus events.Bus, timeout time.Duration, log *logger.Logger) *Module {
	log = log.WithModule("suppliers")

	var resolverCompleter pincode.Completer
	if completer != nil {
		resolverCompleter = completer
	}
	resolver := pincode.NewResolver(resolverCompleter, cache, timeout, log)
	svc := service.New(completer, resolver, bus, timeout, log)

	return &Module{handler: handler.New(svc)}
}

func (m *Module) Name() string {
	return "suppliers"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/suppliers")
	group.GET("/search", ctx.AIRateLimiter.RateLimit(), m.handler.Search)
	group.GET("/qr", m.handler.DirectionsQR)
}

var _ apphttp.Module = (*Module)(nil)
