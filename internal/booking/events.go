package booking

import (
	"encoding/json"
	"time"
)

const (
	EventBookingCreated       = "BookingCreated"
	EventBookingStatusChanged = "BookingStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // booking_id
	Payload       json.RawMessage `json:"payload"`
}

type BookingCreatedPayload struct {
	BookingID   string    `json:"booking_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	Quantity    int       `json:"quantity"`
	TotalCost   float64   `json:"total_cost"`
	PickupDate  time.Time `json:"pickup_date"`
}

type BookingStatusChangedPayload struct {
	BookingID     string `json:"booking_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Quantity      int    `json:"quantity"`
	StockRestored bool   `json:"stock_restored"`
}
