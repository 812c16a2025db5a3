package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/webtilians/backA/internal/domain"
)

func availabilityOutcome(a domain.Availability) outcome {
	var b strings.Builder
	fmt.Fprintf(&b, "Disponibilidad para %s:\n", a.Date)
	fmt.Fprintf(&b, "%s\n", a.RoomType.Name)
	fmt.Fprintf(&b, "%s %s por noche\n", formatPrice(a.RoomType.Price), a.RoomType.Currency)
	fmt.Fprintf(&b, "Disponibles: %d de %d habitaciones\n", a.Available, a.Total)
	if a.Available > 0 {
		b.WriteString("Hay habitaciones disponibles para reservar")
	} else {
		b.WriteString("No hay habitaciones disponibles para esta fecha")
	}

	return outcome{
		ok: true,
		payload: map[string]any{
			"ok":          true,
			"encontrado":  true,
			"tipo":        a.RoomType.Name,
			"descripcion": a.RoomType.Description,
			"precio":      a.RoomType.Price,
			"moneda":      a.RoomType.Currency,
			"fecha":       a.Date,
			"total":       a.Total,
			"reservadas":  a.Reserved,
			"disponibles": a.Available,
		},
		text: b.String(),
	}
}

func reservationOutcome(r domain.Reservation) outcome {
	var b strings.Builder
	b.WriteString("¡Reserva confirmada!\n\n")
	fmt.Fprintf(&b, "ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Cliente: %s\n", r.GuestName)
	fmt.Fprintf(&b, "Habitación: %s\n", r.RoomType)
	fmt.Fprintf(&b, "Fecha: %s\n", r.Date)
	fmt.Fprintf(&b, "Personas: %d\n", r.Guests)
	if r.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", r.Email)
	}
	if r.Phone != "" {
		fmt.Fprintf(&b, "Teléfono: %s\n", r.Phone)
	}

	return outcome{
		ok: true,
		payload: map[string]any{
			"ok":      true,
			"mensaje": fmt.Sprintf("Reserva creada exitosamente con ID %s", r.ID),
			"reserva": r,
		},
		text: strings.TrimSuffix(b.String(), "\n"),
	}
}

func roomTypesText(roomTypes []domain.RoomType) string {
	if len(roomTypes) == 0 {
		return "No hay información de habitaciones disponible"
	}
	var b strings.Builder
	b.WriteString("Habitaciones del hotel\n")
	for _, rt := range roomTypes {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", rt.Name)
		if rt.Description != "" {
			fmt.Fprintf(&b, "  %s\n", rt.Description)
		}
		fmt.Fprintf(&b, "  %s %s por noche\n", formatPrice(rt.Price), rt.Currency)
		fmt.Fprintf(&b, "  Total de habitaciones: %d\n", rt.Total)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func reservationsText(reservations []domain.Reservation) string {
	if len(reservations) == 0 {
		return "No hay reservas registradas actualmente."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Reservas actuales (%d en total)\n", len(reservations))
	for _, r := range reservations {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", r.ID)
		fmt.Fprintf(&b, "  %s\n", r.GuestName)
		fmt.Fprintf(&b, "  %s, %s\n", r.RoomType, r.Date)
		fmt.Fprintf(&b, "  %d persona(s)\n", r.Guests)
		if r.Email != "" {
			fmt.Fprintf(&b, "  %s\n", r.Email)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// formatPrice prints 85 as "85" and 140.5 as "140.5".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// validationMessage strips wrapping prefixes from an ErrValidation error.
// e.g. "service.ReservationService.Create: validation error: nombre is required" → "nombre is required"
func validationMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
