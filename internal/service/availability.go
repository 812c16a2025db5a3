// Package service contains the business logic for the hotel reservation backend.
// Services validate inputs, resolve room types against the catalog, and
// orchestrate repo calls. No storage details live here; services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/webtilians/backA/internal/domain"
	"github.com/webtilians/backA/internal/repo"
)

// AvailabilityService answers "how many rooms of this type are free on this date".
type AvailabilityService struct {
	catalog      repo.CatalogRepo
	reservations repo.ReservationRepo
}

// NewAvailabilityService constructs an AvailabilityService backed by the provided repos.
func NewAvailabilityService(catalog repo.CatalogRepo, reservations repo.ReservationRepo) *AvailabilityService {
	return &AvailabilityService{catalog: catalog, reservations: reservations}
}

// Check returns the availability of roomType on date.
// Returns domain.ErrValidation for a blank type or a malformed date and
// domain.ErrUnknownRoomType when the catalog has no such type. A fully booked
// type is not an error: it reports Available == 0.
func (s *AvailabilityService) Check(ctx context.Context, roomType, date string) (domain.Availability, error) {
	roomType, date = strings.TrimSpace(roomType), strings.TrimSpace(date)
	if roomType == "" {
		return domain.Availability{}, fmt.Errorf("%w: tipo_habitacion is required", domain.ErrValidation)
	}
	if err := domain.ValidateDate(date); err != nil {
		return domain.Availability{}, err
	}

	rt, err := resolveRoomType(ctx, s.catalog, roomType)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("service.AvailabilityService.Check: %w", err)
	}

	reserved, err := s.reservations.Count(ctx, rt.Name, date)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("service.AvailabilityService.Check: %w", err)
	}
	return domain.NewAvailability(rt, date, reserved), nil
}

// ListRoomTypes returns the whole catalog.
// Always returns a non-nil slice so callers can safely range over it.
func (s *AvailabilityService) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	roomTypes, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.AvailabilityService.ListRoomTypes: %w", err)
	}
	if roomTypes == nil {
		return []domain.RoomType{}, nil
	}
	return roomTypes, nil
}

// resolveRoomType looks name up in the catalog, case-insensitively.
func resolveRoomType(ctx context.Context, catalog repo.CatalogRepo, name string) (domain.RoomType, error) {
	roomTypes, err := catalog.List(ctx)
	if err != nil {
		return domain.RoomType{}, err
	}
	rt, ok := domain.FindRoomType(roomTypes, name)
	if !ok {
		return domain.RoomType{}, fmt.Errorf("%w: %q", domain.ErrUnknownRoomType, name)
	}
	return rt, nil
}
