// Package weather wires the OpenWeather forecast proxy routes.
package weather

import (
	apphttp "agriportal_backend/internal/http"
	"agriportal_backend/platform/config"
	"agriportal_backend/platform/logger"
)

// Module wires the weather proxy HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.WeatherConfig, log *logger.Logger) *Module {
	svc := NewService(cfg.GetOpenWeatherAPIKey(), log.WithModule("weather"))
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "weather"
}

// RegisterRoutes mounts the proxy at the legacy path the front-end calls
// and under the versioned API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/api/weather", m.handler.Forecast)
	ctx.V1.GET("/weather", m.handler.Forecast)
}

var _ apphttp.Module = (*Module)(nil)
