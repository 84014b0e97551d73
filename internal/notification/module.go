package notification

import (
	"context"

	"agriportal_backend/internal/events"
	"agriportal_backend/platform/logger"
)

// FarmEmailSender sends the farm registration confirmation.
type FarmEmailSender interface {
	SendFarmRegistered(ctx context.Context, toEmail, farmerName, village, state string) error
}

// Module subscribes to domain events and fans them out to channels. It has
// no HTTP surface.
type Module struct {
	sender FarmEmailSender
	log    *logger.Logger
}

// NewModule creates the notification module and subscribes it to the bus.
// sender may be nil; registrations are then only logged.
func NewModule(bus events.Bus, sender FarmEmailSender, log *logger.Logger) *Module {
	m := &Module{sender: sender, log: log.WithModule("notification")}

	bus.Subscribe("farms.registered", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		registered, ok := e.(events.FarmRegistered)
		if !ok {
			return nil
		}
		m.handleFarmRegistered(ctx, registered)
		return nil
	}))

	return m
}

func (m *Module) handleFarmRegistered(ctx context.Context, e events.FarmRegistered) {
	m.log.Info("farm registered",
		"farm_id", e.FarmID,
		"village", e.Village,
		"state", e.State,
	)

	if m.sender == nil || e.Email == "" {
		return
	}

	if err := m.sender.SendFarmRegistered(ctx, e.Email, e.FarmerName, e.Village, e.State); err != nil {
		m.log.UpstreamError("farm registration email", err)
	}
}
