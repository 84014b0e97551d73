// Package transport defines request and response DTOs for the farms
// HTTP API.
package transport

import "github.com/google/uuid"

// CreateFarmRequest contains data for registering a farm.
type CreateFarmRequest struct {
	FarmerName  string  `json:"farmerName" validate:"required,min=2,max=100"`
	Village     string  `json:"village" validate:"required,min=2,max=100"`
	District    string  `json:"district" validate:"omitempty,max=100"`
	State       string  `json:"state" validate:"required,min=2,max=100"`
	Pincode     string  `json:"pincode" validate:"required,len=6,numeric"`
	AreaAcres   float64 `json:"areaAcres" validate:"required,gt=0,lte=100000"`
	PrimaryCrop string  `json:"primaryCrop" validate:"required,min=2,max=100"`
	Phone       string  `json:"phone" validate:"required,min=10,max=20"`
	Email       string  `json:"email" validate:"omitempty,email"`
}

// UpdateFarmRequest contains data for updating a registered farm. All
// fields are required: the form resubmits the full record.
type UpdateFarmRequest struct {
	FarmerName  string  `json:"farmerName" validate:"required,min=2,max=100"`
	Village     string  `json:"village" validate:"required,min=2,max=100"`
	District    string  `json:"district" validate:"omitempty,max=100"`
	State       string  `json:"state" validate:"required,min=2,max=100"`
	Pincode     string  `json:"pincode" validate:"required,len=6,numeric"`
	AreaAcres   float64 `json:"areaAcres" validate:"required,gt=0,lte=100000"`
	PrimaryCrop string  `json:"primaryCrop" validate:"required,min=2,max=100"`
	Phone       string  `json:"phone" validate:"required,min=10,max=20"`
	Email       string  `json:"email" validate:"omitempty,email"`
}

// FarmResponse represents a farm in API responses.
type FarmResponse struct {
	ID          uuid.UUID `json:"id"`
	FarmerName  string    `json:"farmerName"`
	Village     string    `json:"village"`
	District    string    `json:"district,omitempty"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	AreaAcres   float64   `json:"areaAcres"`
	PrimaryCrop string    `json:"primaryCrop"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// FarmListResponse wraps a list of farms.
type FarmListResponse struct {
	Items []FarmResponse `json:"items"`
	Total int            `json:"total"`
}
