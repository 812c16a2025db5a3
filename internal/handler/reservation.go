package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/webtilians/backA/internal/domain"
)

// ListReservations handles GET /reservations.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := s.reservations.List(r.Context())
	if err != nil {
		s.writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReservationsResponse{Reservations: reservations})
}

// CreateReservation handles POST /reservations.
func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var body CreateReservationRequest
	if tooLarge, err := decodeBody(r, &body); err != nil {
		if tooLarge {
			writeJSON(w, http.StatusRequestEntityTooLarge, payloadTooLargeBody())
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if body.Date == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("fecha is required"))
		return
	}

	req := requestToReservation(body)
	created, err := s.reservations.Create(r.Context(), req)
	if err != nil {
		switch {
		case isNotFound(err):
			writeJSON(w, http.StatusNotFound, notFoundBody(fmt.Sprintf("room type %q not found", req.RoomType)))
		case errors.Is(err, domain.ErrNoAvailability):
			writeJSON(w, http.StatusConflict, conflictBody(
				fmt.Sprintf("no %s rooms available on %s", req.RoomType, req.Date)))
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		default:
			s.writeInternal(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
