// Package repo contains all persistence logic for the hotel reservation backend.
// Each backend has its own file with a constructor returning one of the
// interfaces below. No business logic lives here, only storage and mapping.
package repo

import (
	"context"

	"github.com/webtilians/backA/internal/domain"
)

// CatalogRepo reads the room-type catalog.
// The service layer depends on this interface, not a concrete backend, which
// allows services to be unit-tested with a mock.
type CatalogRepo interface {
	// List returns every room type in catalog order.
	// A catalog that does not exist yet yields an empty slice and no error.
	// A catalog that exists but cannot be decoded yields domain.ErrStoreRead.
	List(ctx context.Context) ([]domain.RoomType, error)
}

// ReservationRepo defines the persistence operations for Reservations.
type ReservationRepo interface {
	// List returns every reservation in creation order.
	// A store that does not exist yet yields an empty slice and no error.
	List(ctx context.Context) ([]domain.Reservation, error)

	// Count returns the number of reservations for roomType on date.
	// roomType is matched case-insensitively.
	Count(ctx context.Context, roomType, date string) (int, error)

	// Reserve appends r only if fewer than capacity reservations already exist
	// for (r.RoomType, r.Date). The check and the append are atomic with
	// respect to every other Reserve call on the same store.
	// Returns domain.ErrNoAvailability when the pair is full and
	// domain.ErrStoreWrite when the append could not be persisted.
	Reserve(ctx context.Context, r domain.Reservation, capacity int) (domain.Reservation, error)
}
