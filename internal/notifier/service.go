package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/freshflower/storefront/internal/booking"
	kafkax "github.com/freshflower/storefront/internal/kafka"
	"github.com/freshflower/storefront/internal/redisx"
)

// Service memformat ringkasan booking untuk outbound messaging. Murni
// presentasi: tidak menyentuh stok maupun status.
type Service struct {
	Redis       *redis.Client
	Log         *logrus.Logger
	ServiceName string
}

// HandleBookingCreated dipasang sebagai handler consumer topic booking.created.
func (s *Service) HandleBookingCreated(ctx context.Context, m kafkago.Message) error {
	var env booking.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != booking.EventBookingCreated {
		return nil
	}
	if s.seen(ctx, env.EventID) {
		return nil
	}

	p, err := kafkax.UnwrapPayload[booking.BookingCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id": p.BookingID,
		"guest":      p.GuestEmail,
		"trace_id":   env.TraceID,
	}).Info(formatCreated(p))
	return nil
}

// HandleStatusChanged dipasang pada topic booking.status.changed.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env booking.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != booking.EventBookingStatusChanged {
		return nil
	}
	if s.seen(ctx, env.EventID) {
		return nil
	}

	p, err := kafkax.UnwrapPayload[booking.BookingStatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	s.Log.WithFields(logrus.Fields{
		"booking_id": p.BookingID,
		"trace_id":   env.TraceID,
	}).Info(formatStatusChanged(p))
	return nil
}

func (s *Service) seen(ctx context.Context, eventID string) bool {
	key := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, eventID)
	exists, _ := redisx.Exists(ctx, s.Redis, key)
	if exists {
		return true
	}
	_ = s.Redis.Set(ctx, key, "1", redisx.TTLDedup).Err()
	return false
}

func formatCreated(p booking.BookingCreatedPayload) string {
	return fmt.Sprintf("Pesanan baru: %s x%d untuk %s (total Rp%.0f, ambil %s)",
		p.ProductName, p.Quantity, p.GuestName, p.TotalCost, p.PickupDate.Format("02-01-2006"))
}

func formatStatusChanged(p booking.BookingStatusChangedPayload) string {
	msg := fmt.Sprintf("Booking %s: %s -> %s", p.BookingID, p.From, p.To)
	if p.StockRestored {
		msg += fmt.Sprintf(" (stok dikembalikan %d)", p.Quantity)
	}
	return msg
}
