// Package events holds the booking event contract published on Kafka and the
// worker side consumer that archives invoice documents.
package events

import (
	"time"

	"resort/infras/kafka"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"

	HeaderEventType = "event_type"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	InvoiceID     string    `json:"invoice_id,omitempty"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	UserID        string    `json:"user_id"`
	RoomID        string    `json:"room_id"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"total_amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Message keys the event by booking id so every event of a booking lands on the same partition.
func (e BookingEvent) Message() kafka.Message {
	return kafka.Message{
		Key:     e.BookingID,
		Value:   e,
		Headers: map[string]string{HeaderEventType: e.Type},
	}
}
