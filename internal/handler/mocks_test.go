package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/webtilians/backA/internal/domain"
	"github.com/webtilians/backA/internal/handler"
	"github.com/webtilians/backA/internal/tools"
)

// mockAvailability is a test double for handler.AvailabilityServicer.
// Set only the method fields your test needs.
type mockAvailability struct {
	check         func(ctx context.Context, roomType, date string) (domain.Availability, error)
	listRoomTypes func(ctx context.Context) ([]domain.RoomType, error)
}

func (m *mockAvailability) Check(ctx context.Context, roomType, date string) (domain.Availability, error) {
	return m.check(ctx, roomType, date)
}
func (m *mockAvailability) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	return m.listRoomTypes(ctx)
}

// mockReservations is a test double for handler.ReservationServicer.
type mockReservations struct {
	create func(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error)
	list   func(ctx context.Context) ([]domain.Reservation, error)
}

func (m *mockReservations) Create(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	return m.create(ctx, req)
}
func (m *mockReservations) List(ctx context.Context) ([]domain.Reservation, error) {
	return m.list(ctx)
}

// mockDispatcher is a test double for handler.ToolDispatcher.
type mockDispatcher struct {
	definitions func() []openai.Tool
	dispatchAs  func(ctx context.Context, name string, args json.RawMessage, format tools.Format) tools.Result
}

func (m *mockDispatcher) Definitions() []openai.Tool { return m.definitions() }
func (m *mockDispatcher) DispatchAs(ctx context.Context, name string, args json.RawMessage, format tools.Format) tools.Result {
	return m.dispatchAs(ctx, name, args, format)
}

// compile-time checks: mocks must satisfy the handler's dependencies.
var (
	_ handler.AvailabilityServicer = (*mockAvailability)(nil)
	_ handler.ReservationServicer  = (*mockReservations)(nil)
	_ handler.ToolDispatcher       = (*mockDispatcher)(nil)
)

// ---- helpers ---------------------------------------------------------------

type deps struct {
	availability *mockAvailability
	reservations *mockReservations
	tools        *mockDispatcher
}

// newHTTPHandler wires a Server with the given mocks into its chi router,
// the same way main.go does in production.
func newHTTPHandler(d deps) http.Handler {
	if d.availability == nil {
		d.availability = &mockAvailability{}
	}
	if d.reservations == nil {
		d.reservations = &mockReservations{}
	}
	if d.tools == nil {
		d.tools = &mockDispatcher{definitions: func() []openai.Tool { return nil }}
	}
	srv := handler.NewServer(d.availability, d.reservations, d.tools, tools.FormatJSON, nil)
	return srv.Routes()
}

func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

var suiteJunior = domain.RoomType{Name: "Suite Junior", Description: "Sala de estar", Price: 140, Currency: "EUR", Total: 3}
