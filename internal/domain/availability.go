package domain

// Availability is the remaining capacity of one room type on one date.
type Availability struct {
	RoomType  RoomType
	Date      string
	Total     int
	Reserved  int
	Available int
}

// NewAvailability computes the availability of rt given reserved units.
// Available is clamped at zero so over-booked legacy data never reports a
// negative count.
func NewAvailability(rt RoomType, date string, reserved int) Availability {
	return Availability{
		RoomType:  rt,
		Date:      date,
		Total:     rt.Total,
		Reserved:  reserved,
		Available: max(0, rt.Total-reserved),
	}
}
