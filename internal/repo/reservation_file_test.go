package repo_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/webtilians/backA/internal/domain"
	"github.com/webtilians/backA/internal/repo"
)

// reservationFixture returns a domain.Reservation with sensible defaults.
// Callers can override individual fields after calling this function.
func reservationFixture() domain.Reservation {
	return domain.Reservation{
		ID:        domain.NewReservationID(),
		GuestName: "Ana García",
		RoomType:  "Doble Estándar",
		Date:      "2025-07-20",
		Email:     "ana@example.com",
		Phone:     "+34 600 000 000",
		Guests:    2,
		CreatedAt: domain.NewTimestamp(time.Date(2025, 7, 1, 9, 30, 0, 123456000, time.UTC)),
	}
}

func newFileRepo(t *testing.T) (repo.ReservationRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reservas.json")
	return repo.NewFileReservationRepo(path), path
}

func TestFileReservationRepo_List_MissingFileIsEmpty(t *testing.T) {
	r, _ := newFileRepo(t)

	got, err := r.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileReservationRepo_List_MalformedIsReadFailure(t *testing.T) {
	r, path := newFileRepo(t)
	writeFile(t, path, `[{"id": "RES1"`)

	_, err := r.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreRead)

	_, err = r.Count(context.Background(), "Doble Estándar", "2025-07-20")
	assert.ErrorIs(t, err, domain.ErrStoreRead)

	_, err = r.Reserve(context.Background(), reservationFixture(), 10)
	assert.ErrorIs(t, err, domain.ErrStoreRead)
}

func TestFileReservationRepo_Reserve_RoundTrip(t *testing.T) {
	r, path := newFileRepo(t)
	ctx := context.Background()
	input := reservationFixture()

	created, err := r.Reserve(ctx, input, 10)
	require.NoError(t, err)
	assert.Equal(t, input, created)

	// A fresh repo has no cache, so this reads purely from disk.
	got, err := repo.NewFileReservationRepo(path).List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, input, got[0])
}

func TestFileReservationRepo_Reserve_FileFormat(t *testing.T) {
	r, path := newFileRepo(t)
	input := reservationFixture()

	_, err := r.Reserve(context.Background(), input, 10)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)
	assert.Contains(t, content, `"tipo_habitacion": "Doble Estándar"`, "non-ASCII must not be escaped")
	assert.Contains(t, content, `"fecha": "2025-07-20"`)
	assert.Contains(t, content, `"personas": 2`)
	assert.Contains(t, content, `"timestamp": "2025-07-01T09:30:00.123456Z"`)
	assert.Contains(t, content, "\n  {", "array entries are indented by two spaces")
}

// legacyRecord is one element of a reservations file written by the previous
// hotel backend: null contact fields, a zone-less timestamp and a field this
// service does not model.
const legacyRecord = `{
    "id": "RESa1b2c3d4",
    "nombre": "Luis Pérez",
    "tipo_habitacion": "Suite Junior",
    "fecha": "2025-07-15",
    "email": null,
    "telefono": null,
    "personas": 1,
    "timestamp": "2025-07-01T10:11:12.123456",
    "canal": "web"
  }`

// TestFileReservationRepo_Reserve_KeepsExistingRecordsVerbatim verifies that
// appending never rewrites records this service did not create.
func TestFileReservationRepo_Reserve_KeepsExistingRecordsVerbatim(t *testing.T) {
	r, path := newFileRepo(t)
	writeFile(t, path, "[\n  "+legacyRecord+"\n]")
	ctx := context.Background()

	_, err := r.Reserve(ctx, reservationFixture(), 10)
	require.NoError(t, err)
	// A second append goes through the cached raw records, not the file.
	second := reservationFixture()
	second.Date = "2025-07-21"
	_, err = r.Reserve(ctx, second, 10)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)
	assert.True(t, strings.HasPrefix(content, "[\n  "+legacyRecord+",\n  {\n"),
		"legacy record changed:\n%s", content)
	assert.Contains(t, content, `"timestamp": "2025-07-01T09:30:00.123456Z"`)
	assert.True(t, strings.HasSuffix(content, "\n  }\n]\n"))

	got, err := repo.NewFileReservationRepo(path).List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "RESa1b2c3d4", got[0].ID)
	assert.Empty(t, got[0].Email)
	assert.Equal(t, "2025-07-21", got[2].Date)
}

func TestFileReservationRepo_Reserve_CapacityReached(t *testing.T) {
	r, _ := newFileRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := reservationFixture()
		res.ID = fmt.Sprintf("RES%08d", i)
		_, err := r.Reserve(ctx, res, 3)
		require.NoError(t, err)
	}

	_, err := r.Reserve(ctx, reservationFixture(), 3)
	assert.ErrorIs(t, err, domain.ErrNoAvailability)

	n, err := r.Count(ctx, "Doble Estándar", "2025-07-20")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFileReservationRepo_Count_CaseInsensitiveAndPerDate(t *testing.T) {
	r, path := newFileRepo(t)
	writeFile(t, path, `[
  {"id": "RES00000001", "nombre": "A", "tipo_habitacion": "suite junior", "fecha": "2025-07-20", "personas": 1, "timestamp": "2025-06-01T10:00:00.123456"},
  {"id": "RES00000002", "nombre": "B", "tipo_habitacion": "SUITE JUNIOR", "fecha": "2025-07-20", "personas": 1, "timestamp": "2025-06-01T10:05:00"},
  {"id": "RES00000003", "nombre": "C", "tipo_habitacion": "Suite Junior", "fecha": "2025-07-21", "personas": 1, "timestamp": "2025-06-01T10:10:00Z"}
]`)
	ctx := context.Background()

	n, err := r.Count(ctx, "Suite Junior", "2025-07-20")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Count(ctx, "suite JUNIOR", "2025-07-21")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.Count(ctx, "Suite Junior", "2025-07-22")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFileReservationRepo_Count_SeesExternalEdits(t *testing.T) {
	r, path := newFileRepo(t)
	ctx := context.Background()

	_, err := r.Reserve(ctx, reservationFixture(), 10)
	require.NoError(t, err)

	// Another writer appends a record behind this repo's back.
	writeFile(t, path, `[
  {"id": "RES00000001", "nombre": "A", "tipo_habitacion": "Doble Estándar", "fecha": "2025-07-20", "personas": 1},
  {"id": "RES00000002", "nombre": "B", "tipo_habitacion": "Doble Estándar", "fecha": "2025-07-20", "personas": 1},
  {"id": "RES00000003", "nombre": "C", "tipo_habitacion": "Doble Estándar", "fecha": "2025-07-20", "personas": 1}
]`)

	n, err := r.Count(ctx, "Doble Estándar", "2025-07-20")

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFileReservationRepo_Reserve_WriteFailureLeavesStateUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "reservas.json")
	r := repo.NewFileReservationRepo(path)
	ctx := context.Background()

	_, err := r.Reserve(ctx, reservationFixture(), 10)
	require.ErrorIs(t, err, domain.ErrStoreWrite)

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := r.Count(ctx, "Doble Estándar", "2025-07-20")
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestFileReservationRepo_Reserve_ConcurrentCallersNeverOverbook fires many
// simultaneous Reserve calls at a pair with little capacity and checks that
// exactly capacity of them succeed and the file agrees.
func TestFileReservationRepo_Reserve_ConcurrentCallersNeverOverbook(t *testing.T) {
	r, path := newFileRepo(t)
	ctx := context.Background()
	const capacity, callers = 3, 25

	var ok, full atomic.Int32
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			res := reservationFixture()
			res.ID = fmt.Sprintf("RES%08d", i)
			_, err := r.Reserve(ctx, res, capacity)
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrNoAvailability):
				full.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, capacity, ok.Load())
	assert.EqualValues(t, callers-capacity, full.Load())

	got, err := repo.NewFileReservationRepo(path).List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, capacity)
}
