// Package tools exposes the availability and reservation services as named
// tools with typed argument schemas, for an external language-model
// orchestrator. It validates arguments, formats results, and never lets an
// error escape: every failure becomes a Result with OK == false.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/webtilians/backA/internal/domain"
)

// Format selects how a Result's Content is rendered.
type Format string

const (
	// FormatJSON renders the structured payload as a JSON object with an "ok" flag.
	FormatJSON Format = "json"
	// FormatText renders a human-readable Spanish message.
	FormatText Format = "text"
)

// ParseFormat maps "json" and "text" to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatText:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown tool result format %q (want json or text)", s)
}

// Availability is the availability-engine behaviour the tools depend on.
type Availability interface {
	Check(ctx context.Context, roomType, date string) (domain.Availability, error)
	ListRoomTypes(ctx context.Context) ([]domain.RoomType, error)
}

// Reservations is the reservation-writer behaviour the tools depend on.
type Reservations interface {
	Create(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
}

// Result is the outcome of one tool invocation.
type Result struct {
	Tool    string `json:"tool"`
	OK      bool   `json:"ok"`
	Content string `json:"content"`
}

// outcome is what a tool handler produces before formatting.
type outcome struct {
	ok      bool
	payload map[string]any
	text    string
}

func failure(message string, extra map[string]any) outcome {
	payload := map[string]any{"ok": false, "mensaje": message}
	for k, v := range extra {
		payload[k] = v
	}
	return outcome{ok: false, payload: payload, text: message}
}

type tool struct {
	def openai.FunctionDefinition
	run func(ctx context.Context, args json.RawMessage) outcome
}

// Dispatcher routes tool calls to the services.
type Dispatcher struct {
	availability Availability
	reservations Reservations
	format       Format
	log          *slog.Logger
	tools        map[string]tool
}

// NewDispatcher constructs a Dispatcher rendering results in format by default.
func NewDispatcher(availability Availability, reservations Reservations, format Format, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		availability: availability,
		reservations: reservations,
		format:       format,
		log:          log,
	}
	d.tools = map[string]tool{
		CheckAvailability: {def: checkAvailabilityDefinition(), run: d.checkAvailability},
		CreateReservation: {def: createReservationDefinition(), run: d.createReservation},
		ListRoomTypes:     {def: listRoomTypesDefinition(), run: d.listRoomTypes},
		ListReservations:  {def: listReservationsDefinition(), run: d.listReservations},
	}
	return d
}

// Definitions returns the tool schemas sorted by name, ready to be passed as
// the Tools of an openai.ChatCompletionRequest.
func (d *Dispatcher) Definitions() []openai.Tool {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]openai.Tool, 0, len(names))
	for _, name := range names {
		def := d.tools[name].def
		out = append(out, openai.Tool{Type: openai.ToolTypeFunction, Function: &def})
	}
	return out
}

// Dispatch runs the named tool in the dispatcher's default format.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) Result {
	return d.DispatchAs(ctx, name, args, d.format)
}

// DispatchAs runs the named tool and renders its result in format.
func (d *Dispatcher) DispatchAs(ctx context.Context, name string, args json.RawMessage, format Format) (res Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			d.log.ErrorContext(ctx, "tool panicked", "tool", name, "panic", fmt.Sprint(p))
			res = render(name, failure("Error interno ejecutando la herramienta", nil), format)
		}
		d.log.InfoContext(ctx, "tool dispatched",
			"tool", name,
			"ok", res.OK,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	t, ok := d.tools[name]
	if !ok {
		return render(name, failure(fmt.Sprintf("Herramienta desconocida '%s'", name), nil), format)
	}
	return render(name, t.run(ctx, args), format)
}

// HandleToolCall executes an assistant tool call and returns the "tool" role
// message the orchestrator appends to the conversation.
func (d *Dispatcher) HandleToolCall(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	res := d.Dispatch(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    res.Content,
		Name:       call.Function.Name,
		ToolCallID: call.ID,
	}
}

func render(name string, o outcome, format Format) Result {
	res := Result{Tool: name, OK: o.ok}
	if format == FormatText {
		res.Content = o.text
		return res
	}
	b, err := json.Marshal(o.payload)
	if err != nil {
		b = []byte(`{"ok":false,"mensaje":"Error formateando el resultado"}`)
		res.OK = false
	}
	res.Content = string(b)
	return res
}

func (d *Dispatcher) checkAvailability(ctx context.Context, raw json.RawMessage) outcome {
	var args availabilityArgs
	if err := decodeArgs(raw, &args); err != nil {
		return failure(err.Error(), map[string]any{"motivo": "validacion"})
	}

	a, err := d.availability.Check(ctx, args.RoomType, args.Date)
	switch {
	case err == nil:
		return availabilityOutcome(a)
	case errors.Is(err, domain.ErrUnknownRoomType):
		return failure(d.unknownRoomTypeText(ctx, args.RoomType), map[string]any{
			"encontrado": false,
			"motivo":     "tipo_desconocido",
		})
	case errors.Is(err, domain.ErrValidation):
		return failure(validationMessage(err), map[string]any{"motivo": "validacion"})
	default:
		d.log.ErrorContext(ctx, "availability check failed", "tool", CheckAvailability, "error", err)
		return failure("Error consultando disponibilidad", map[string]any{"motivo": "error_almacenamiento"})
	}
}

func (d *Dispatcher) createReservation(ctx context.Context, raw json.RawMessage) outcome {
	var args reservationArgs
	if err := decodeArgs(raw, &args); err != nil {
		return failure(err.Error(), map[string]any{"motivo": "validacion"})
	}

	r, err := d.reservations.Create(ctx, domain.ReservationRequest{
		GuestName: args.GuestName,
		RoomType:  args.RoomType,
		Date:      args.Date,
		Email:     args.Email,
		Phone:     args.Phone,
		Guests:    int(args.Guests),
	})
	switch {
	case err == nil:
		return reservationOutcome(r)
	case errors.Is(err, domain.ErrUnknownRoomType):
		return failure(fmt.Sprintf("No existe el tipo de habitación '%s'", args.RoomType),
			map[string]any{"motivo": "tipo_desconocido"})
	case errors.Is(err, domain.ErrNoAvailability):
		return failure(fmt.Sprintf("No hay habitaciones %s disponibles para %s", args.RoomType, args.Date),
			map[string]any{"motivo": "sin_disponibilidad"})
	case errors.Is(err, domain.ErrValidation):
		return failure(validationMessage(err), map[string]any{"motivo": "validacion"})
	default:
		d.log.ErrorContext(ctx, "reservation failed", "tool", CreateReservation, "error", err)
		return failure("Error guardando la reserva", map[string]any{"motivo": "error_almacenamiento"})
	}
}

func (d *Dispatcher) listRoomTypes(ctx context.Context, _ json.RawMessage) outcome {
	roomTypes, err := d.availability.ListRoomTypes(ctx)
	if err != nil {
		d.log.ErrorContext(ctx, "listing room types failed", "tool", ListRoomTypes, "error", err)
		return failure("Error obteniendo tipos de habitaciones", map[string]any{"motivo": "error_almacenamiento"})
	}
	return outcome{
		ok:      true,
		payload: map[string]any{"ok": true, "habitaciones": roomTypes},
		text:    roomTypesText(roomTypes),
	}
}

func (d *Dispatcher) listReservations(ctx context.Context, _ json.RawMessage) outcome {
	reservations, err := d.reservations.List(ctx)
	if err != nil {
		d.log.ErrorContext(ctx, "listing reservations failed", "tool", ListReservations, "error", err)
		return failure("Error obteniendo reservas", map[string]any{"motivo": "error_almacenamiento"})
	}
	return outcome{
		ok:      true,
		payload: map[string]any{"ok": true, "reservas": reservations},
		text:    reservationsText(reservations),
	}
}

// unknownRoomTypeText names the types that do exist, when the catalog can be read.
func (d *Dispatcher) unknownRoomTypeText(ctx context.Context, name string) string {
	msg := fmt.Sprintf("No encontré el tipo de habitación '%s'.", name)
	roomTypes, err := d.availability.ListRoomTypes(ctx)
	if err != nil || len(roomTypes) == 0 {
		return msg
	}
	names := make([]string, len(roomTypes))
	for i, rt := range roomTypes {
		names[i] = rt.Name
	}
	return msg + " Los tipos disponibles son: " + strings.Join(names, ", ")
}
