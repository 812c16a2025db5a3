package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	openai "github.com/sashabaranov/go-openai"

	"github.com/webtilians/backA/internal/domain"
)

// The types below mirror the schemas in api/openapi.yaml.

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Tools   int    `json:"tools"`
}

// RoomTypesResponse is the body of GET /room-types. The key matches the
// catalog document so the two can be compared directly.
type RoomTypesResponse struct {
	RoomTypes []domain.RoomType `json:"habitaciones"`
}

// ReservationsResponse is the body of GET /reservations.
type ReservationsResponse struct {
	Reservations []domain.Reservation `json:"reservas"`
}

// AvailabilityResponse is the body of GET /availability.
type AvailabilityResponse struct {
	RoomType    string  `json:"tipo"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Currency    string  `json:"moneda"`
	Date        string  `json:"fecha"`
	Total       int     `json:"total"`
	Reserved    int     `json:"reservadas"`
	Available   int     `json:"disponibles"`
}

// CreateReservationRequest is the body of POST /reservations.
type CreateReservationRequest struct {
	GuestName string              `json:"nombre"`
	RoomType  string              `json:"tipo_habitacion"`
	Date      *openapi_types.Date `json:"fecha"`
	Email     *string             `json:"email,omitempty"`
	Phone     *string             `json:"telefono,omitempty"`
	Guests    *int                `json:"personas,omitempty"`
}

// ToolsResponse is the body of GET /tools.
type ToolsResponse struct {
	Tools []openai.Tool `json:"tools"`
}

func availabilityToResponse(a domain.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		RoomType:    a.RoomType.Name,
		Description: a.RoomType.Description,
		Price:       a.RoomType.Price,
		Currency:    a.RoomType.Currency,
		Date:        a.Date,
		Total:       a.Total,
		Reserved:    a.Reserved,
		Available:   a.Available,
	}
}

// requestToReservation converts the request body into a domain request.
// Business rules (blank name, personas < 1) are left to the service.
func requestToReservation(body CreateReservationRequest) domain.ReservationRequest {
	req := domain.ReservationRequest{
		GuestName: body.GuestName,
		RoomType:  body.RoomType,
	}
	if body.Date != nil {
		req.Date = body.Date.Format(domain.DateLayout)
	}
	if body.Email != nil {
		req.Email = *body.Email
	}
	if body.Phone != nil {
		req.Phone = *body.Phone
	}
	if body.Guests != nil {
		req.Guests = *body.Guests
	}
	return req
}
