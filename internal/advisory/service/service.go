// Package service implements crop advice and disease detection on top of
// the Gemini completion client.
package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"agriportal_backend/internal/advisory/transport"
	"agriportal_backend/platform/apperr"
	"agriportal_backend/platform/logger"
)

const diseasePrompt = "Tell about name and detect any disease in this crop"

// Completer issues text and multimodal prompts to a completion model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// ImageArchive retains uploaded crop photos for later review.
type ImageArchive interface {
	Store(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

// Service provides crop advisory business logic.
type Service struct {
	completer Completer
	archive   ImageArchive
	timeout   time.Duration
	log       *logger.Logger
}

// New creates the advisory service. archive may be nil; uploads are then
// analyzed without being retained.
func New(completer Completer, archive ImageArchive, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{completer: completer, archive: archive, timeout: timeout, log: log}
}

// CropAdvice asks the model for crop recommendations matching the
// farmer's soil, season and region. The reply is returned as-is.
func (s *Service) CropAdvice(ctx context.Context, req transport.CropAdviceRequest) (transport.CropAdviceResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	advice, err := s.completer.Complete(callCtx, buildAdvicePrompt(req))
	if err != nil {
		s.log.UpstreamError("crop advice completion", err)
		return transport.CropAdviceResponse{}, apperr.Upstream("advisory service unavailable", err)
	}

	return transport.CropAdviceResponse{Advice: advice}, nil
}

func buildAdvicePrompt(req transport.CropAdviceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest the best crops to grow on %s soil in the %s season in %s",
		strings.ToLower(req.SoilType), strings.ToLower(req.Season), req.State)
	if req.District != "" {
		fmt.Fprintf(&b, " (%s district)", req.District)
	}
	if req.AreaAcres > 0 {
		fmt.Fprintf(&b, " on a %.1f acre farm", req.AreaAcres)
	}
	b.WriteString(". For each crop, give expected yield, water needs, and one practical tip. Keep it short and practical for a small farmer.")
	return b.String()
}

// DetectDisease analyzes an uploaded crop photo. EXIF GPS coordinates are
// extracted when present, and the photo is archived when storage is
// configured; neither step can fail the analysis itself.
func (s *Service) DetectDisease(ctx context.Context, fileName, contentType string, image []byte) (transport.DiseaseDetectionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	analysis, err := s.completer.CompleteWithImage(callCtx, diseasePrompt, image, contentType)
	if err != nil {
		s.log.UpstreamError("disease detection completion", err)
		return transport.DiseaseDetectionResponse{}, apperr.Upstream("advisory service unavailable", err)
	}

	resp := transport.DiseaseDetectionResponse{Analysis: analysis}

	if lat, lng, ok := extractGPS(image); ok {
		resp.Lat = &lat
		resp.Lng = &lng
	}

	if s.archive != nil {
		key, err := s.archive.Store(ctx, fileName, contentType, image)
		if err != nil {
			s.log.UpstreamError("crop image archive", err)
		} else {
			resp.ImageKey = key
		}
	}

	return resp, nil
}

// extractGPS reads the photo's EXIF GPS tag. Most phone cameras write it,
// but screenshots and stripped uploads will not.
func extractGPS(image []byte) (float64, float64, bool) {
	x, err := exif.Decode(bytes.NewReader(image))
	if err != nil {
		return 0, 0, false
	}
	lat, lng, err := x.LatLong()
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
