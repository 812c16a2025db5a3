package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the only accepted format for stay dates ("fecha").
const DateLayout = "2006-01-02"

// Reservation is a booking of one room of a given type for a single night.
// Reservations are never mutated after creation.
type Reservation struct {
	ID        string    `json:"id"`
	GuestName string    `json:"nombre"`
	RoomType  string    `json:"tipo_habitacion"`
	Date      string    `json:"fecha"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono"`
	Guests    int       `json:"personas"`
	CreatedAt Timestamp `json:"timestamp"`
}

// ReservationRequest carries the caller-supplied fields for a new reservation.
// Email, Phone and Guests are optional; Guests defaults to 1.
type ReservationRequest struct {
	GuestName string
	RoomType  string
	Date      string
	Email     string
	Phone     string
	Guests    int
}

// NewReservationID mints an opaque reservation identifier such as "RES1f3a9c0d".
// It is derived from a random UUID and is not guaranteed to be globally unique.
func NewReservationID() string {
	return "RES" + uuid.NewString()[:8]
}

// ValidateDate returns an ErrValidation-wrapped error unless s is a calendar
// date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: fecha is required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: fecha must be YYYY-MM-DD, got %q", ErrValidation, s)
	}
	return nil
}

// legacyLayouts are timestamp formats written by older deployments that did
// not record a zone. They are interpreted in local time.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a creation time that marshals as RFC 3339 with nanoseconds and
// also accepts the zone-less ISO-8601 values found in older reservation files.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, dropping its monotonic reading and normalizing to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ts.Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*ts = Timestamp{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("domain.Timestamp: unrecognized time %q", s)
}
