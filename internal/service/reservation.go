package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/webtilians/backA/internal/domain"
	"github.com/webtilians/backA/internal/repo"
)

// Notifier is told about every reservation after it has been persisted.
type Notifier interface {
	ReservationCreated(ctx context.Context, r domain.Reservation) error
}

// ReservationService creates and lists reservations.
type ReservationService struct {
	catalog      repo.CatalogRepo
	reservations repo.ReservationRepo
	notifier     Notifier
	log          *slog.Logger
	now          func() time.Time
}

// ReservationOption customizes a ReservationService.
type ReservationOption func(*ReservationService)

// WithNotifier registers n to be called after each successful Create.
// A nil n disables notifications.
func WithNotifier(n Notifier) ReservationOption {
	return func(s *ReservationService) { s.notifier = n }
}

// WithLogger sets the logger used for notification failures.
func WithLogger(l *slog.Logger) ReservationOption {
	return func(s *ReservationService) { s.log = l }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) ReservationOption {
	return func(s *ReservationService) { s.now = now }
}

// NewReservationService constructs a ReservationService backed by the provided repos.
func NewReservationService(catalog repo.CatalogRepo, reservations repo.ReservationRepo, opts ...ReservationOption) *ReservationService {
	s := &ReservationService{
		catalog:      catalog,
		reservations: reservations,
		log:          slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req, resolves its room type and books one unit.
//
// Returns domain.ErrValidation for invalid input, domain.ErrUnknownRoomType
// when the catalog has no such type, domain.ErrNoAvailability when the pair
// is full and domain.ErrStoreWrite when the booking could not be saved. No
// reservation exists after any of these errors. The capacity check and the
// append happen inside repo.ReservationRepo.Reserve, which is atomic per
// (room type, date), so concurrent callers can never overbook.
func (s *ReservationService) Create(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return domain.Reservation{}, err
	}

	rt, err := resolveRoomType(ctx, s.catalog, req.RoomType)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}

	// Postgres keeps microseconds; truncating here keeps every backend's
	// round trip exact.
	created := domain.NewTimestamp(s.now().Truncate(time.Microsecond))
	res := domain.Reservation{
		ID:        domain.NewReservationID(),
		GuestName: req.GuestName,
		RoomType:  rt.Name,
		Date:      req.Date,
		Email:     req.Email,
		Phone:     req.Phone,
		Guests:    req.Guests,
		CreatedAt: created,
	}

	stored, err := s.reservations.Reserve(ctx, res, rt.Total)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.ReservationCreated(ctx, stored); err != nil {
			s.log.WarnContext(ctx, "reservation notification failed",
				"reservation_id", stored.ID,
				"error", err,
			)
		}
	}
	return stored, nil
}

// List returns every reservation in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.List: %w", err)
	}
	if reservations == nil {
		return []domain.Reservation{}, nil
	}
	return reservations, nil
}

// normalizeRequest trims text fields, applies the party-size default and
// enforces the business rules for a new reservation:
//   - nombre and tipo_habitacion must be non-empty.
//   - fecha must be a YYYY-MM-DD date.
//   - personas, if given, must be at least 1.
func normalizeRequest(req domain.ReservationRequest) (domain.ReservationRequest, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.RoomType = strings.TrimSpace(req.RoomType)
	req.Date = strings.TrimSpace(req.Date)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.GuestName == "" {
		return req, fmt.Errorf("%w: nombre is required", domain.ErrValidation)
	}
	if req.RoomType == "" {
		return req, fmt.Errorf("%w: tipo_habitacion is required", domain.ErrValidation)
	}
	if err := domain.ValidateDate(req.Date); err != nil {
		return req, err
	}
	switch {
	case req.Guests == 0:
		req.Guests = 1
	case req.Guests < 0:
		return req, fmt.Errorf("%w: personas must be at least 1", domain.ErrValidation)
	}
	return req, nil
}
