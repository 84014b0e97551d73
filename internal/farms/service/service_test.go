package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"agriportal_backend/internal/events"
	"agriportal_backend/internal/farms/repository"
	"agriportal_backend/internal/farms/transport"
	"agriportal_backend/platform/apperr"
	"agriportal_backend/platform/logger"
)

type fakeRepo struct {
	farms map[uuid.UUID]repository.Farm
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{farms: make(map[uuid.UUID]repository.Farm)}
}

func (f *fakeRepo) Create(ctx context.Context, farm repository.Farm) (repository.Farm, error) {
	now := time.Now()
	farm.CreatedAt = now
	farm.UpdatedAt = now
	f.farms[farm.ID] = farm
	return farm, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Farm, error) {
	farm, ok := f.farms[id]
	if !ok {
		return repository.Farm{}, apperr.NotFound("farm not found")
	}
	return farm, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]repository.Farm, error) {
	var farms []repository.Farm
	for _, farm := range f.farms {
		farms = append(farms, farm)
	}
	return farms, nil
}

func (f *fakeRepo) Update(ctx context.Context, farm repository.Farm) (repository.Farm, error) {
	existing, ok := f.farms[farm.ID]
	if !ok {
		return repository.Farm{}, apperr.NotFound("farm not found")
	}
	farm.CreatedAt = existing.CreatedAt
	farm.UpdatedAt = time.Now()
	f.farms[farm.ID] = farm
	return farm, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.farms[id]; !ok {
		return apperr.NotFound("farm not found")
	}
	delete(f.farms, id)
	return nil
}

func createRequest() transport.CreateFarmRequest {
	return transport.CreateFarmRequest{
		FarmerName:  "Ramesh Kumar",
		Village:     "Bhiwani",
		State:       "Haryana",
		Pincode:     "127021",
		AreaAcres:   3.5,
		PrimaryCrop: "Wheat",
		Phone:       "+91 98765 43210",
		Email:       "ramesh@example.com",
	}
}

func TestCreateNormalizesPhoneAndPublishes(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)

	published := make(chan events.FarmRegistered, 1)
	bus.Subscribe("farms.registered", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		published <- e.(events.FarmRegistered)
		return nil
	}))

	svc := New(newFakeRepo(), bus, log)

	resp, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Phone != "+919876543210" {
		t.Fatalf("phone not normalized: %q", resp.Phone)
	}
	if resp.ID == uuid.Nil {
		t.Fatalf("missing farm ID")
	}

	// Publish runs handlers asynchronously.
	select {
	case registered := <-published:
		if registered.FarmID != resp.ID || registered.Village != "Bhiwani" {
			t.Fatalf("event payload wrong: %+v", registered)
		}
	case <-time.After(time.Second):
		t.Fatalf("farms.registered was not published")
	}
}

func TestUpdateUnknownFarmReturnsNotFound(t *testing.T) {
	svc := New(newFakeRepo(), nil, logger.New("test"))

	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdateFarmRequest{
		FarmerName:  "X",
		Village:     "Y",
		State:       "Z",
		Pincode:     "110001",
		AreaAcres:   1,
		PrimaryCrop: "Rice",
		Phone:       "9876543210",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateThenGetAndDelete(t *testing.T) {
	svc := New(newFakeRepo(), nil, logger.New("test"))
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FarmerName != "Ramesh Kumar" {
		t.Fatalf("farmer name = %q", got.FarmerName)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
