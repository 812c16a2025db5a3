package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/webtilians/backA/internal/domain"
)

// GetAvailability handles GET /availability?tipo_habitacion=&fecha=.
// An unknown room type is a 404, never "0 available".
func (s *Server) GetAvailability(w http.ResponseWriter, r *http.Request) {
	var (
		roomType string
		date     openapi_types.Date
	)
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "tipo_habitacion", query, &roomType); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "fecha", query, &date); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("fecha must be YYYY-MM-DD: %v", err)))
		return
	}

	a, err := s.availability.Check(r.Context(), roomType, date.Format(domain.DateLayout))
	if err != nil {
		switch {
		case isNotFound(err):
			writeJSON(w, http.StatusNotFound, notFoundBody(fmt.Sprintf("room type %q not found", roomType)))
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		default:
			s.writeInternal(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, availabilityToResponse(a))
}
