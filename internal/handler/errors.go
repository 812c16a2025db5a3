package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/webtilians/backA/internal/domain"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message because the handler is the layer that
// knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

func conflictBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "conflict", Message: message}}
}

func internalBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "internal", Message: "internal server error"}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ReservationService.Create: validation error: nombre is required" → "nombre is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// decodeBody decodes a JSON request body into dst. It reports whether the
// body was too large so callers can answer 413 instead of 422.
func decodeBody(r *http.Request, dst any) (tooLarge bool, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return true, err
		}
		return false, errors.New("request body is not valid JSON: " + err.Error())
	}
	return false, nil
}

// writeInternal logs err and answers 500 without leaking its details.
func (s *Server) writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, internalBody())
}

func payloadTooLargeBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "payload_too_large", Message: "request body too large"}}
}

// isNotFound reports whether err means the requested room type does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUnknownRoomType) || errors.Is(err, domain.ErrNotFound)
}
