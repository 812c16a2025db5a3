// Package handler implements the HTTP handlers for the hotel reservations API.
// All handlers are methods on Server. They are split into resource-specific
// files (health.go, availability.go, etc.) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	openai "github.com/sashabaranov/go-openai"

	"github.com/webtilians/backA/internal/domain"
	"github.com/webtilians/backA/internal/tools"
)

// AvailabilityServicer defines the availability operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching any store.
type AvailabilityServicer interface {
	Check(ctx context.Context, roomType, date string) (domain.Availability, error)
	ListRoomTypes(ctx context.Context) ([]domain.RoomType, error)
}

// ReservationServicer defines the reservation operations the handlers depend on.
type ReservationServicer interface {
	Create(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
}

// ToolDispatcher runs named tools on behalf of a language-model orchestrator.
type ToolDispatcher interface {
	Definitions() []openai.Tool
	DispatchAs(ctx context.Context, name string, args json.RawMessage, format tools.Format) tools.Result
}

// Server holds the dependencies shared by every handler.
type Server struct {
	availability AvailabilityServicer
	reservations ReservationServicer
	tools        ToolDispatcher
	defaultFmt   tools.Format
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// defaultFormat is used by POST /tools/{name} when no ?format= is given.
func NewServer(availability AvailabilityServicer, reservations ReservationServicer, dispatcher ToolDispatcher, defaultFormat tools.Format, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		availability: availability,
		reservations: reservations,
		tools:        dispatcher,
		defaultFmt:   defaultFormat,
		log:          log,
	}
}

// Routes returns a router serving every endpoint. toolMiddleware wraps only
// the /tools routes; main.go passes the rate limiter here.
func (s *Server) Routes(toolMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.GetInfo)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/room-types", s.ListRoomTypes)
	r.Get("/availability", s.GetAvailability)
	r.Get("/reservations", s.ListReservations)
	r.Post("/reservations", s.CreateReservation)

	r.Route("/tools", func(r chi.Router) {
		r.Use(toolMiddleware...)
		r.Get("/", s.ListTools)
		r.Post("/{name}", s.InvokeTool)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: ErrorDetail{Code: "method_not_allowed", Message: r.Method + " is not allowed on " + r.URL.Path},
		})
	})
	return r
}
