// Package service implements supplier discovery: an AI-backed synthesizer
// with a tolerant free-text parser and a deterministic generator fallback.
package service

import (
	"context"

	"agriportal_backend/internal/suppliers/pincode"
)

// Category is the supplier classification shown as filter chips in the UI.
type Category string

const (
	CategorySeeds       Category = "Seeds"
	CategoryFertilizers Category = "Fertilizers"
	CategoryEquipment   Category = "Equipment"
)

// categoryOrder drives the round-robin assignment for records whose source
// text lacks a usable Type field, and the generator's 2-per-category layout.
var categoryOrder = []Category{CategorySeeds, CategoryFertilizers, CategoryEquipment}

// Record source values.
const (
	SourceAI        = "ai"
	SourceGenerated = "generated"
)

// Supplier is a single directory entry. DistanceKm and LocationLabel are
// derived from the resolved search location at synthesis time and are never
// carried over between searches.
type Supplier struct {
	Name          string   `json:"name"`
	Category      Category `json:"type"`
	Rating        float64  `json:"rating"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	City          string   `json:"city"`
	Address       string   `json:"address"`
	Products      []string `json:"products"`
	Verified      bool     `json:"verified"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	PriceRange    string   `json:"priceRange"`
	PriceInfo     string   `json:"priceInfo"`
	OpeningHours  string   `json:"openingHours"`
	DistanceKm    float64  `json:"distance"`
	LocationLabel string   `json:"location"`
	Source        string   `json:"source"`
}

// SearchResult is the outcome of one resolve+synthesize pipeline run.
type SearchResult struct {
	Location   pincode.Location
	Suppliers  []Supplier
	TotalCount int
	Source     string
}

// Completer issues a single free-text prompt to a text-completion model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Per-category defaults applied to parsed and generated records alike.
var (
	priceRangeByCategory = map[Category]string{
		CategorySeeds:       "₹₹",
		CategoryFertilizers: "₹₹₹",
		CategoryEquipment:   "₹₹₹₹",
	}
	priceInfoByCategory = map[Category]string{
		CategorySeeds:       "Starting from ₹500/kg",
		CategoryFertilizers: "Starting from ₹800/bag",
		CategoryEquipment:   "Contact for pricing",
	}
)

const defaultOpeningHours = "Mon-Sat: 9 AM - 7 PM"
