package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/webtilians/backA/internal/domain"
)

// countKey identifies one (room type, date) capacity counter.
type countKey struct {
	roomType string // domain.RoomTypeKey form
	date     string
}

func keyOf(roomType, date string) countKey {
	return countKey{roomType: domain.RoomTypeKey(roomType), date: date}
}

// fileReservationRepo is the JSON-file implementation of ReservationRepo.
//
// All access goes through mu, so the read-check-append-rewrite sequence in
// Reserve is serialized within the process. The file is cached twice: as the
// raw bytes of each array element, which are written back untouched, and
// decoded, with a (room type, date) → count index. The cache is rebuilt
// whenever the file's size or modification time no longer match what this
// repo last observed.
type fileReservationRepo struct {
	path string

	mu           sync.Mutex
	loaded       bool
	modTime      time.Time
	size         int64
	raw          []json.RawMessage
	reservations []domain.Reservation
	counts       map[countKey]int
}

// NewFileReservationRepo constructs a ReservationRepo backed by the JSON array at path.
// The file is created on the first successful Reserve.
func NewFileReservationRepo(path string) ReservationRepo {
	return &fileReservationRepo{path: path}
}

// List returns a copy of every stored reservation.
func (r *fileReservationRepo) List(_ context.Context) ([]domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: %w", err)
	}
	out := make([]domain.Reservation, len(r.reservations))
	copy(out, r.reservations)
	return out, nil
}

// Count returns the indexed count for (roomType, date).
func (r *fileReservationRepo) Count(_ context.Context, roomType, date string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return 0, fmt.Errorf("repo.ReservationRepo.Count: %w", err)
	}
	return r.counts[keyOf(roomType, date)], nil
}

// Reserve appends res and rewrites the file, unless the pair is full. Only
// the new element is encoded; existing elements are written back byte for
// byte. On a failed write the in-memory state is left untouched.
func (r *fileReservationRepo) Reserve(_ context.Context, res domain.Reservation, capacity int) (domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w", err)
	}

	key := keyOf(res.RoomType, res.Date)
	if r.counts[key] >= capacity {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w", domain.ErrNoAvailability)
	}

	rec, err := encodeRecord(res)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w: %v", domain.ErrStoreWrite, err)
	}
	nextRaw := make([]json.RawMessage, len(r.raw), len(r.raw)+1)
	copy(nextRaw, r.raw)
	nextRaw = append(nextRaw, rec)

	if err := writeFileAtomic(r.path, encodeArray(nextRaw)); err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w: %v", domain.ErrStoreWrite, err)
	}

	next := make([]domain.Reservation, len(r.reservations), len(r.reservations)+1)
	copy(next, r.reservations)
	r.reservations = append(next, res)
	r.raw = nextRaw
	r.counts[key]++
	if info, err := os.Stat(r.path); err == nil {
		r.modTime, r.size = info.ModTime(), info.Size()
	} else {
		// Force a reload next time rather than trusting a stale stamp.
		r.loaded = false
	}
	return res, nil
}

// refresh reloads the cache when the file changed on disk.
// Must be called with mu held.
func (r *fileReservationRepo) refresh() error {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.reset(nil, nil, time.Time{}, -1)
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	if r.loaded && info.ModTime().Equal(r.modTime) && info.Size() == r.size {
		return nil
	}

	b, ok, err := readFile(r.path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	if !ok {
		r.reset(nil, nil, time.Time{}, -1)
		return nil
	}

	var raw []json.RawMessage
	if len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrStoreRead, r.path, err)
		}
	}
	reservations := make([]domain.Reservation, len(raw))
	for i, rec := range raw {
		if err := json.Unmarshal(rec, &reservations[i]); err != nil {
			return fmt.Errorf("%w: %s: element %d: %v", domain.ErrStoreRead, r.path, i, err)
		}
	}
	r.reset(raw, reservations, info.ModTime(), info.Size())
	return nil
}

// reset replaces the cache and rebuilds the count index from scratch.
func (r *fileReservationRepo) reset(raw []json.RawMessage, reservations []domain.Reservation, modTime time.Time, size int64) {
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	r.raw = raw
	counts := make(map[countKey]int, len(reservations))
	for _, res := range reservations {
		counts[keyOf(res.RoomType, res.Date)]++
	}
	r.reservations = reservations
	r.counts = counts
	r.modTime = modTime
	r.size = size
	r.loaded = true
}
