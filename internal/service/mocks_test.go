package service_test

import (
	"context"

	"github.com/webtilians/backA/internal/domain"
	"github.com/webtilians/backA/internal/repo"
)

// mockCatalogRepo is a hand-written test double for repo.CatalogRepo.
type mockCatalogRepo struct {
	list func(ctx context.Context) ([]domain.RoomType, error)
}

func (m *mockCatalogRepo) List(ctx context.Context) ([]domain.RoomType, error) {
	return m.list(ctx)
}

// mockReservationRepo is a hand-written test double for repo.ReservationRepo.
// Set only the method fields your test needs.
type mockReservationRepo struct {
	list    func(ctx context.Context) ([]domain.Reservation, error)
	count   func(ctx context.Context, roomType, date string) (int, error)
	reserve func(ctx context.Context, r domain.Reservation, capacity int) (domain.Reservation, error)
}

func (m *mockReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	return m.list(ctx)
}
func (m *mockReservationRepo) Count(ctx context.Context, roomType, date string) (int, error) {
	return m.count(ctx, roomType, date)
}
func (m *mockReservationRepo) Reserve(ctx context.Context, r domain.Reservation, capacity int) (domain.Reservation, error) {
	return m.reserve(ctx, r, capacity)
}

// mockNotifier records every reservation it is told about.
type mockNotifier struct {
	err  error
	seen []domain.Reservation
}

func (m *mockNotifier) ReservationCreated(_ context.Context, r domain.Reservation) error {
	m.seen = append(m.seen, r)
	return m.err
}

// compile-time checks: mocks must satisfy the interfaces they stand in for.
var (
	_ repo.CatalogRepo     = (*mockCatalogRepo)(nil)
	_ repo.ReservationRepo = (*mockReservationRepo)(nil)
)

// staticCatalog returns a mockCatalogRepo serving the standard two-type catalog.
func staticCatalog() *mockCatalogRepo {
	return &mockCatalogRepo{
		list: func(_ context.Context) ([]domain.RoomType, error) {
			return []domain.RoomType{
				{Name: "Doble Estándar", Price: 85, Currency: "EUR", Total: 10},
				{Name: "Suite Junior", Price: 140, Currency: "EUR", Total: 3},
			}, nil
		},
	}
}
