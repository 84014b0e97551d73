// Package handler exposes the suppliers HTTP endpoints.
package handler

import (
	"fmt"
	"net/http"

	"agriportal_backend/internal/suppliers/service"
	"agriportal_backend/internal/suppliers/transport"
	"agriportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// Handler serves supplier search and QR directions routes.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Search handles GET /api/v1/suppliers/search?pincode=110001&q=...&category=...
// Anything past parameter validation is a 200: resolution and synthesis
// degrade internally rather than fail.
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "pincode must be exactly 6 digits", nil)
		return
	}

	result := h.svc.Search(c.Request.Context(), req.Pincode, req.Query, service.Category(req.Category))
	httpkit.OK(c, transport.NewSearchResponse(result))
}

// DirectionsQR handles GET /api/v1/suppliers/qr?lat=..&lng=..
// It returns a PNG QR code pointing at Google Maps directions for the
// coordinates, so the supplier card can be scanned from a phone.
func (h *Handler) DirectionsQR(c *gin.Context) {
	var req transport.QRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and lng are required", nil)
		return
	}

	mapsURL := fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", req.Lat, req.Lng)
	png, err := qrcode.Encode(mapsURL, qrcode.Medium, 256)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to encode QR code", nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
