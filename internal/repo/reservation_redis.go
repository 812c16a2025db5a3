package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/webtilians/backA/internal/domain"
)

// reserveScript performs the capacity check, counter increment and append in
// one server-side step. KEYS[1] is the (room type, date) counter and KEYS[2]
// the reservation list; ARGV[1] is the capacity and ARGV[2] the encoded
// reservation. Returns 1 when appended and 0 when the pair is full.
var reserveScript = redis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if n >= tonumber(ARGV[1]) then
	return 0
end
redis.call('INCR', KEYS[1])
redis.call('RPUSH', KEYS[2], ARGV[2])
return 1
`)

// redisReservationRepo is the Redis implementation of ReservationRepo.
// Reservations live as JSON strings in one list; each (room type, date) pair
// has its own counter so Count never scans the list. Every key starts with the
// hash tag {prefix}, so on a cluster they share one slot and reserveScript can
// touch them together.
type redisReservationRepo struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisReservationRepo constructs a ReservationRepo storing its keys under prefix.
func NewRedisReservationRepo(client redis.UniversalClient, prefix string) ReservationRepo {
	return &redisReservationRepo{client: client, prefix: prefix}
}

func (r *redisReservationRepo) listKey() string {
	return "{" + r.prefix + "}:reservations"
}

func (r *redisReservationRepo) countKey(roomType, date string) string {
	return fmt.Sprintf("{%s}:reservations:count:%s:%s", r.prefix, domain.RoomTypeKey(roomType), date)
}

// List decodes every entry of the reservation list.
func (r *redisReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	raw, err := r.client.LRange(ctx, r.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: %w: %v", domain.ErrStoreRead, err)
	}

	reservations := make([]domain.Reservation, 0, len(raw))
	for _, item := range raw {
		var res domain.Reservation
		if err := json.Unmarshal([]byte(item), &res); err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.List: decode: %w: %v", domain.ErrStoreRead, err)
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

// Count reads the pair's counter. A missing counter means zero.
func (r *redisReservationRepo) Count(ctx context.Context, roomType, date string) (int, error) {
	n, err := r.client.Get(ctx, r.countKey(roomType, date)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("repo.ReservationRepo.Count: %w: %v", domain.ErrStoreRead, err)
	}
	return n, nil
}

// Reserve runs reserveScript, which Redis executes atomically.
func (r *redisReservationRepo) Reserve(ctx context.Context, res domain.Reservation, capacity int) (domain.Reservation, error) {
	b, err := json.Marshal(res)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: encode: %w: %v", domain.ErrStoreWrite, err)
	}

	keys := []string{r.countKey(res.RoomType, res.Date), r.listKey()}
	ok, err := reserveScript.Run(ctx, r.client, keys, capacity, string(b)).Int()
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w: %v", domain.ErrStoreWrite, err)
	}
	if ok == 0 {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w", domain.ErrNoAvailability)
	}
	return res, nil
}
