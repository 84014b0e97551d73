// Package transport defines request and response DTOs for the suppliers
// HTTP API.
package transport

import (
	"agriportal_backend/internal/suppliers/pincode"
	"agriportal_backend/internal/suppliers/service"
)

// SearchRequest carries the query parameters for GET /suppliers/search.
// The pincode must be exactly six digits; query and category are optional
// post-filters applied to the synthesized list.
type SearchRequest struct {
	Pincode  string `form:"pincode" binding:"required,len=6,numeric"`
	Query    string `form:"q"`
	Category string `form:"category" binding:"omitempty,oneof=Seeds Fertilizers Equipment"`
}

// QRRequest carries the coordinates for GET /suppliers/qr. The handler
// encodes a Google Maps directions link for them as a PNG QR code.
type QRRequest struct {
	Lat float64 `form:"lat" binding:"required"`
	Lng float64 `form:"lng" binding:"required"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Location   pincode.Location   `json:"location"`
	Suppliers  []service.Supplier `json:"suppliers"`
	TotalCount int                `json:"totalCount"`
	Source     string             `json:"source"`
}

func NewSearchResponse(result service.SearchResult) SearchResponse {
	return SearchResponse{
		Location:   result.Location,
		Suppliers:  result.Suppliers,
		TotalCount: result.TotalCount,
		Source:     result.Source,
	}
}
