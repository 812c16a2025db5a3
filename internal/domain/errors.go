package domain

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing guest name, malformed date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnknownRoomType is returned when a room-type name matches no catalog entry.
// It is distinct from ErrNoAvailability: callers must be able to tell
// "no such room" apart from "fully booked".
var ErrUnknownRoomType = errors.New("unknown room type")

// ErrNoAvailability is returned when every unit of a room type is already
// reserved for the requested date. Handlers should map this to HTTP 409.
var ErrNoAvailability = errors.New("no availability")

// ErrStoreRead is returned when a backing store exists but cannot be read or
// decoded. A store that does not exist yet is not an error; it is empty.
var ErrStoreRead = errors.New("store read failure")

// ErrStoreWrite is returned when persisting reservations fails.
// No reservation is reported as created when this error is returned.
var ErrStoreWrite = errors.New("store write failure")
