package weather

// ForecastRequest carries the location for GET /api/weather. Either a
// coordinate pair or an OpenWeather city ID is accepted.
type ForecastRequest struct {
	Lat    *float64 `form:"lat"`
	Lon    *float64 `form:"lon"`
	CityID string   `form:"id"`
}

func (r ForecastRequest) valid() bool {
	if r.CityID != "" {
		return true
	}
	return r.Lat != nil && r.Lon != nil
}
