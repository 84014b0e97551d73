// Package handler exposes the advisory HTTP endpoints.
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriportal_backend/internal/advisory/service"
	"agriportal_backend/internal/advisory/transport"
	"agriportal_backend/platform/httpkit"
	"agriportal_backend/platform/validator"
)

// Uploads beyond this are rejected before the bytes reach the model.
const maxImageBytes = 10 << 20

// Handler handles HTTP requests for crop advisory.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new advisory handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CropAdvice handles POST /api/v1/advisory/crops.
func (h *Handler) CropAdvice(c *gin.Context) {
	var req transport.CropAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.CropAdvice(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DetectDisease handles POST /api/v1/advisory/disease. The crop photo is
// sent as a multipart form field named "image".
func (h *Handler) DetectDisease(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "an 'image' file is required", nil)
		return
	}
	if fileHeader.Size > maxImageBytes {
		httpkit.Error(c, http.StatusBadRequest, "image exceeds the 10 MB limit", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		httpkit.Error(c, http.StatusBadRequest, "image must be JPEG, PNG or WebP", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read uploaded image", nil)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read uploaded image", nil)
		return
	}

	result, err := h.svc.DetectDisease(c.Request.Context(), fileHeader.Filename, contentType, image)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
