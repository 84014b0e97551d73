// Package service implements the farm registry business logic.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agriportal_backend/internal/events"
	"agriportal_backend/internal/farms/repository"
	"agriportal_backend/internal/farms/transport"
	"agriportal_backend/platform/logger"
	"agriportal_backend/platform/phone"
)

// Service provides business logic for the farm registry.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new farms service. bus may be nil.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create registers a farm and publishes FarmRegistered.
func (s *Service) Create(ctx context.Context, req transport.CreateFarmRequest) (transport.FarmResponse, error) {
	farm := repository.Farm{
		ID:          uuid.New(),
		FarmerName:  req.FarmerName,
		Village:     req.Village,
		District:    req.District,
		State:       req.State,
		Pincode:     req.Pincode,
		AreaAcres:   req.AreaAcres,
		PrimaryCrop: req.PrimaryCrop,
		Phone:       phone.NormalizeE164(req.Phone),
		Email:       req.Email,
	}

	created, err := s.repo.Create(ctx, farm)
	if err != nil {
		return transport.FarmResponse{}, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.FarmRegistered{
			BaseEvent:  events.NewBaseEvent(),
			FarmID:     created.ID,
			FarmerName: created.FarmerName,
			Village:    created.Village,
			State:      created.State,
			Pincode:    created.Pincode,
			Email:      created.Email,
		})
	}

	return toResponse(created), nil
}

// GetByID retrieves a farm.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.FarmResponse, error) {
	farm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.FarmResponse{}, err
	}
	return toResponse(farm), nil
}

// List retrieves all registered farms, newest first.
func (s *Service) List(ctx context.Context) (transport.FarmListResponse, error) {
	farms, err := s.repo.List(ctx)
	if err != nil {
		return transport.FarmListResponse{}, err
	}

	items := make([]transport.FarmResponse, 0, len(farms))
	for _, farm := range farms {
		items = append(items, toResponse(farm))
	}
	return transport.FarmListResponse{Items: items, Total: len(items)}, nil
}

// Update rewrites a registered farm.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateFarmRequest) (transport.FarmResponse, error) {
	farm := repository.Farm{
		ID:          id,
		FarmerName:  req.FarmerName,
		Village:     req.Village,
		District:    req.District,
		State:       req.State,
		Pincode:     req.Pincode,
		AreaAcres:   req.AreaAcres,
		PrimaryCrop: req.PrimaryCrop,
		Phone:       phone.NormalizeE164(req.Phone),
		Email:       req.Email,
	}

	updated, err := s.repo.Update(ctx, farm)
	if err != nil {
		return transport.FarmResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete removes a farm from the registry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toResponse(farm repository.Farm) transport.FarmResponse {
	return transport.FarmResponse{
		ID:          farm.ID,
		FarmerName:  farm.FarmerName,
		Village:     farm.Village,
		District:    farm.District,
		State:       farm.State,
		Pincode:     farm.Pincode,
		AreaAcres:   farm.AreaAcres,
		PrimaryCrop: farm.PrimaryCrop,
		Phone:       farm.Phone,
		Email:       farm.Email,
		CreatedAt:   farm.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   farm.UpdatedAt.Format(time.RFC3339),
	}
}
