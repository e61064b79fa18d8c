package worker

import (
	"fmt"

	"github.com/careops/hospital-platform/pkg/messaging"
)

// renderNotification maps an event to mail content. Events with no mapping
// are consumed silently; not every domain event warrants an email.
func renderNotification(evt messaging.Event) (subject, body string, ok bool) {
	switch evt.Type {
	case "appointment.created":
		return "New Appointment Booked",
			fmt.Sprintf("<p>A new appointment has been booked.</p><p>Appointment ID: %s</p>", evt.AggregateID),
			true
	case "appointment.status_changed":
		return "Appointment Status Changed",
			fmt.Sprintf("<p>An appointment changed status.</p><p>Appointment ID: %s</p>", evt.AggregateID),
			true
	case "invoice.created":
		return "Invoice Generated",
			fmt.Sprintf("<p>An invoice has been generated.</p><p>Invoice ID: %s</p>", evt.AggregateID),
			true
	case "invoice.paid":
		return "Invoice Paid",
			fmt.Sprintf("<p>An invoice has been fully paid.</p><p>Invoice ID: %s</p>", evt.AggregateID),
			true
	default:
		return "", "", false
	}
}
