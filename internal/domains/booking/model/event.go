package model

import "time"

// Booking lifecycle event names published to the event stream.
const (
	EventBookingCreated  = "booking.created"
	EventPaymentReceived = "booking.payment_received"
)

// BookingEvent is the envelope published for downstream consumers. The phone
// number doubles as the message key so one guest's events stay ordered.
type BookingEvent struct {
	Event      string    `json:"event"`
	Phone      string    `json:"phone"`
	BookingRef string    `json:"bookingRef,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
