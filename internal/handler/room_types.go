package handler

import (
	"net/http"
)

// ListRoomTypes handles GET /room-types.
func (s *Server) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	roomTypes, err := s.availability.ListRoomTypes(r.Context())
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RoomTypesResponse{RoomTypes: roomTypes})
}
