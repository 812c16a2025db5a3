package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// availabilityArgs are the arguments of consultar_disponibilidad.
type availabilityArgs struct {
	RoomType string `json:"tipo_habitacion"`
	Date     string `json:"fecha"`
}

// reservationArgs are the arguments of crear_reserva.
type reservationArgs struct {
	GuestName string  `json:"nombre"`
	RoomType  string  `json:"tipo_habitacion"`
	Date      string  `json:"fecha"`
	Email     string  `json:"email"`
	Phone     string  `json:"telefono"`
	Guests    flexInt `json:"personas"`
}

// flexInt accepts both 2 and "2". Models regularly quote numbers.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("personas must be a whole number, got %s", string(b))
	}
	*f = flexInt(n)
	return nil
}

// decodeArgs unmarshals raw into dst. Empty input is treated as {}.
// Unknown fields are ignored.
func decodeArgs(raw []byte, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
