package notifications

import (
	"context"
	"fmt"
	"log"

	"parkly/internal/bookings"
)

// Notifier delivers a driver-facing message for a booking event
type Notifier interface {
	Notify(ctx context.Context, event *BookingEvent) error
}

// LogNotifier simulates delivery by writing the rendered message to the
// application log. Swapping in a real channel (email, push) only needs a
// new Notifier implementation.
type LogNotifier struct{}

func NewLogNotifier() Notifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, event *BookingEvent) error {
	log.Printf("📧 [simulated] To driver %s: %s", event.RequesterID, renderMessage(event))
	return nil
}

func renderMessage(event *BookingEvent) string {
	switch event.Type {
	case bookings.EventBookingCreated:
		return fmt.Sprintf("Your booking %s is confirmed from %s to %s",
			event.BookingID, event.StartTime.Format("Jan 2 15:04"), event.EndTime.Format("15:04"))

	case bookings.EventBookingCheckedIn:
		return fmt.Sprintf("Checked in to spot %s - enjoy your stay", event.SpotID)

	case bookings.EventBookingCheckedOut:
		if event.ExtraFee > 0 {
			return fmt.Sprintf("Checked out of spot %s - an overstay fee of %.2f was charged", event.SpotID, event.ExtraFee)
		}
		return fmt.Sprintf("Checked out of spot %s - see you next time", event.SpotID)

	case bookings.EventBookingExtended:
		return fmt.Sprintf("Your booking %s was extended until %s",
			event.BookingID, event.EndTime.Format("Jan 2 15:04"))

	case bookings.EventBookingCancelled:
		return fmt.Sprintf("Your booking %s has been cancelled", event.BookingID)

	default:
		return fmt.Sprintf("Update on your booking %s: %s", event.BookingID, event.Status)
	}
}
