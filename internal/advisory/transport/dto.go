// Package transport defines request and response DTOs for the advisory
// HTTP API.
package transport

// CropAdviceRequest describes the farmer's conditions for a crop
// recommendation.
type CropAdviceRequest struct {
	SoilType  string  `json:"soilType" validate:"required,min=2,max=50"`
	Season    string  `json:"season" validate:"required,min=2,max=50"`
	District  string  `json:"district" validate:"omitempty,max=100"`
	State     string  `json:"state" validate:"required,min=2,max=100"`
	AreaAcres float64 `json:"areaAcres" validate:"omitempty,gt=0"`
}

// CropAdviceResponse carries the model's free-text recommendation. The
// front-end renders it as-is.
type CropAdviceResponse struct {
	Advice string `json:"advice"`
}

// DiseaseDetectionResponse carries the model's verdict for an uploaded
// crop photo. Coordinates are present only when the photo carried EXIF
// GPS data; imageKey only when the archive is configured.
type DiseaseDetectionResponse struct {
	Analysis string   `json:"analysis"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	ImageKey string   `json:"imageKey,omitempty"`
}
