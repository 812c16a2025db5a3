package domain_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webtilians/backA/internal/domain"
)

func TestNewReservationID_Format(t *testing.T) {
	re := regexp.MustCompile(`^RES[0-9a-f]{8}$`)
	seen := map[string]bool{}
	for range 50 {
		id := domain.NewReservationID()
		assert.Regexp(t, re, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, domain.ValidateDate("2025-07-20"))
	assert.NoError(t, domain.ValidateDate("2024-02-29"))

	for _, bad := range []string{"", "  ", "20-07-2025", "2025/07/20", "2025-02-30", "mañana", "2025-07-20T10:00:00"} {
		err := domain.ValidateDate(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, domain.ErrValidation), bad)
	}
}

func TestTimestamp_MarshalsRFC3339NanoUTC(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)
	ts := domain.NewTimestamp(time.Date(2025, 7, 20, 12, 30, 0, 123456000, madrid))

	b, err := json.Marshal(ts)

	require.NoError(t, err)
	assert.Equal(t, `"2025-07-20T10:30:00.123456Z"`, string(b))
}

func TestTimestamp_ZeroMarshalsEmpty(t *testing.T) {
	b, err := json.Marshal(domain.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))

	var ts domain.Timestamp
	require.NoError(t, json.Unmarshal(b, &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestamp_AcceptsLegacyLayouts(t *testing.T) {
	want := time.Date(2025, 7, 20, 10, 11, 12, 0, time.Local)
	for _, raw := range []string{
		`"2025-07-20T10:11:12"`,
		`"2025-07-20 10:11:12"`,
		`"2025-07-20T10:11:12.000000"`,
	} {
		var ts domain.Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.Time), raw)
	}

	var ts domain.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-07-20T10:11:12.123456"`), &ts))
	assert.Equal(t, 123456000, ts.Nanosecond())
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts domain.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestReservation_JSONFieldNames(t *testing.T) {
	r := domain.Reservation{
		ID: "RES1a2b3c4d", GuestName: "Ana", RoomType: "Suite Junior", Date: "2025-07-20",
		Guests: 1, CreatedAt: domain.NewTimestamp(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
	}

	b, err := json.Marshal(r)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "RES1a2b3c4d", "nombre": "Ana", "tipo_habitacion": "Suite Junior", "fecha": "2025-07-20",
		"email": "", "telefono": "", "personas": 1, "timestamp": "2025-07-01T00:00:00Z"
	}`, string(b))
}
