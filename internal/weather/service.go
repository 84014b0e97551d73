// Package weather proxies the OpenWeather 5-day forecast so the API key
// never reaches the browser.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agriportal_backend/platform/apperr"
	"agriportal_backend/platform/logger"
)

const forecastURL = "https://api.openweathermap.org/data/2.5/forecast"

// Service fetches forecasts from OpenWeather.
type Service struct {
	client *http.Client
	apiKey string
	log    *logger.Logger
}

func NewService(apiKey string, log *logger.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: 5 * time.Second},
		apiKey: apiKey,
		log:    log,
	}
}

// Forecast returns the upstream forecast payload verbatim. The front-end
// consumes OpenWeather's own shape, so the proxy does not reshape it.
func (s *Service) Forecast(ctx context.Context, req ForecastRequest) (json.RawMessage, error) {
	params := url.Values{}
	params.Add("appid", s.apiKey)
	params.Add("units", "metric")
	if req.CityID != "" {
		params.Add("id", req.CityID)
	} else {
		params.Add("lat", strconv.FormatFloat(*req.Lat, 'f', -1, 64))
		params.Add("lon", strconv.FormatFloat(*req.Lon, 'f', -1, 64))
	}

	reqURL := fmt.Sprintf("%s?%s", forecastURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.UpstreamError("openweather request", err)
		return nil, apperr.Upstream("weather service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstream("weather service unavailable", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.log.Error("openweather upstream error", "status", resp.StatusCode)
		return nil, apperr.Upstream(
			fmt.Sprintf("weather upstream returned %d", resp.StatusCode),
			fmt.Errorf("upstream api error: %d", resp.StatusCode),
		)
	}

	return json.RawMessage(body), nil
}
