// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"agriportal_backend/platform/events"
	"agriportal_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = func(log *logger.Logger) *InMemoryBus { return events.NewInMemoryBus(log) }
)

// =============================================================================
// Farms Domain Events
// =============================================================================

// FarmRegistered is published when a new farm is stored in the registry.
type FarmRegistered struct {
	BaseEvent
	FarmID     uuid.UUID `json:"farmId"`
	FarmerName string    `json:"farmerName"`
	Village    string    `json:"village"`
	State      string    `json:"state"`
	Pincode    string    `json:"pincode"`
	Email      string    `json:"email,omitempty"`
}

func (e FarmRegistered) EventName() string { return "farms.registered" }

// =============================================================================
// Suppliers Domain Events
// =============================================================================

// SupplierSearchCompleted is published after every supplier search,
// regardless of whether the records came from the AI or the generator.
type SupplierSearchCompleted struct {
	BaseEvent
	Pincode     string `json:"pincode"`
	City        string `json:"city"`
	State       string `json:"state"`
	ResultCount int    `json:"resultCount"`
	Source      string `json:"source"` // "ai" or "generated"
}

func (e SupplierSearchCompleted) EventName() string { return "suppliers.search.completed" }
