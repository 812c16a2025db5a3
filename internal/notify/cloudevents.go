// Package notify announces reservation lifecycle events to other systems.
package notify

import (
	"context"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	"github.com/webtilians/backA/internal/domain"
)

const (
	// EventTypeReservationCreated is the CloudEvents "type" of a new booking.
	EventTypeReservationCreated = "com.aselvia.reservation.created"

	// EventSource is the CloudEvents "source" of every event this service emits.
	EventSource = "/hotel/reservations"
)

// CloudEventsNotifier posts one CloudEvent per created reservation to an HTTP
// sink, in binary content mode.
type CloudEventsNotifier struct {
	client cloudevents.Client
}

// NewCloudEventsNotifier constructs a notifier sending to target.
func NewCloudEventsNotifier(target string) (*CloudEventsNotifier, error) {
	c, err := cloudevents.NewClientHTTP(cloudevents.WithTarget(target))
	if err != nil {
		return nil, fmt.Errorf("notify.NewCloudEventsNotifier: %w", err)
	}
	return &CloudEventsNotifier{client: c}, nil
}

// ReservationCreated sends a com.aselvia.reservation.created event whose
// subject is the reservation ID and whose data is the reservation as stored.
// Any non-2xx answer from the sink is an error.
func (n *CloudEventsNotifier) ReservationCreated(ctx context.Context, r domain.Reservation) error {
	e := cloudevents.NewEvent()
	e.SetID(uuid.NewString())
	e.SetType(EventTypeReservationCreated)
	e.SetSource(EventSource)
	e.SetSubject(r.ID)
	e.SetTime(r.CreatedAt.Time)
	if err := e.SetData(cloudevents.ApplicationJSON, r); err != nil {
		return fmt.Errorf("notify.CloudEventsNotifier.ReservationCreated: encode: %w", err)
	}

	if res := n.client.Send(ctx, e); !cloudevents.IsACK(res) {
		return fmt.Errorf("notify.CloudEventsNotifier.ReservationCreated: send %s: %w", r.ID, res)
	}
	return nil
}
