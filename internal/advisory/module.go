// Package advisory provides the crop advisory bounded context: text crop
// recommendations and photo-based disease detection.
package advisory

import (
	"time"

	"agriportal_backend/internal/advisory/handler"
	"agriportal_backend/internal/advisory/service"
	apphttp "agriportal_backend/internal/http"
	"agriportal_backend/platform/logger"
	"agriportal_backend/platform/validator"
)

// Module is the advisory bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the advisory module. archive may be nil.
func NewModule(completer service.Completer, archive service.ImageArchive, timeout time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(completer, archive, timeout, log.WithModule("advisory"))
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "advisory"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/advisory")
	group.Use(ctx.AIRateLimiter.RateLimit())
	group.POST("/crops", m.handler.CropAdvice)
	group.POST("/disease", m.handler.DetectDisease)
}

var _ apphttp.Module = (*Module)(nil)
