package weather

import (
	"net/http"

	"agriportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the forecast proxy endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Forecast handles GET /api/weather?lat=..&lon=.. (or ?id={cityID}).
// The upstream payload is returned verbatim under the usual data envelope.
func (h *Handler) Forecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil || !req.valid() {
		httpkit.Error(c, http.StatusBadRequest, "either lat and lon or a city id is required", nil)
		return
	}

	forecast, err := h.svc.Forecast(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, forecast)
}
