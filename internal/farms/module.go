// Package farms provides the farm registry bounded context: CRUD over the
// farmer's registered farm profiles, mounted at the path the front-end
// calls directly.
package farms

import (
	"agriportal_backend/internal/events"
	"agriportal_backend/internal/farms/handler"
	"agriportal_backend/internal/farms/repository"
	"agriportal_backend/internal/farms/service"
	apphttp "agriportal_backend/internal/http"
	"agriportal_backend/platform/logger"
	"agriportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the farms bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the farms module with its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log.WithModule("farms"))
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "farms"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts farm registry routes. The front-end calls
// /your-farm directly, outside /api/v1.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Engine.Group("/your-farm")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)

	// Same resource under the versioned API for non-legacy clients.
	v1 := ctx.V1.Group("/farms")
	v1.GET("", m.handler.List)
	v1.POST("", m.handler.Create)
	v1.GET("/:id", m.handler.GetByID)
	v1.PUT("/:id", m.handler.Update)
	v1.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
