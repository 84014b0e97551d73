package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"agriportal_backend/internal/events"
	"agriportal_backend/platform/logger"
)

type fakeSender struct {
	sent chan string
}

func (f *fakeSender) SendFarmRegistered(ctx context.Context, toEmail, farmerName, village, state string) error {
	f.sent <- toEmail
	return nil
}

func registeredEvent(email string) events.FarmRegistered {
	return events.FarmRegistered{
		BaseEvent:  events.NewBaseEvent(),
		FarmID:     uuid.New(),
		FarmerName: "Ramesh Kumar",
		Village:    "Bhiwani",
		State:      "Haryana",
		Pincode:    "127021",
		Email:      email,
	}
}

func TestFarmRegisteredTriggersEmail(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	sender := &fakeSender{sent: make(chan string, 1)}
	NewModule(bus, sender, log)

	bus.Publish(context.Background(), registeredEvent("ramesh@example.com"))

	select {
	case to := <-sender.sent:
		if to != "ramesh@example.com" {
			t.Fatalf("sent to %q", to)
		}
	case <-time.After(time.Second):
		t.Fatalf("no email sent for farms.registered")
	}
}

func TestFarmRegisteredWithoutEmailIsOnlyLogged(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	sender := &fakeSender{sent: make(chan string, 1)}
	NewModule(bus, sender, log)

	if err := bus.PublishSync(context.Background(), registeredEvent("")); err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	select {
	case to := <-sender.sent:
		t.Fatalf("unexpected email to %q", to)
	default:
	}
}

func TestNilSenderIsSafe(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	NewModule(bus, nil, log)

	if err := bus.PublishSync(context.Background(), registeredEvent("someone@example.com")); err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
}
