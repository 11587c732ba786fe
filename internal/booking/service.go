package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	kafkax "github.com/freshflower/storefront/internal/kafka"
)

// EventPublisher dipenuhi oleh kafkax.Producer.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service adalah lifecycle manager booking: satu-satunya tempat stok produk
// dan status booking bergerak bersama.
type Service struct {
	store         Store
	createdEvents EventPublisher
	statusEvents  EventPublisher
	producer      string
	log           *logrus.Logger
	validate      *validator.Validate
}

func NewService(store Store, created, status EventPublisher, producer string, log *logrus.Logger) *Service {
	return &Service{
		store:         store,
		createdEvents: created,
		statusEvents:  status,
		producer:      producer,
		log:           log,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateBooking memvalidasi input, reuse/buat guest per email, kunci totalCost
// dari harga produk saat ini, lalu insert booking + potong stok dalam satu
// transaksi. Stok dipotong kondisional (stock >= qty), over-commit ditolak.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*Booking, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := uuid.Parse(in.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	var out *Booking
	err := s.store.InTx(ctx, func(tx Tx) error {
		p, err := tx.LiveProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		g, err := tx.UpsertGuest(ctx, in.Guest)
		if err != nil {
			return err
		}
		if err := tx.DecrementStock(ctx, p.ID, in.Quantity); err != nil {
			return err
		}

		now := time.Now()
		b := &Booking{
			ID:         uuid.NewString(),
			ProductID:  &p.ID,
			GuestID:    g.ID,
			Quantity:   in.Quantity,
			PickupDate: in.PickupDate,
			TotalCost:  TotalCost(p.Price, in.Quantity),
			Status:     StatusBooking,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}

		p.Stock -= in.Quantity
		b.Product, b.Guest = p, g
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, out)
	return out, nil
}

// TransitionStatus mengubah status booking. Masuk Canceled dari status lain
// mengembalikan stok, kecuali referensi produk sudah tidak resolve: transisi
// tetap jalan, anomali stok hanya dicatat di log.
func (s *Service) TransitionStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	var from Status
	var quantity int
	var restored bool
	err := s.store.InTx(ctx, func(tx Tx) error {
		b, err := tx.BookingForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from, quantity = b.Status, b.Quantity

		if RestoresStock(b.Status, status) {
			switch {
			case b.ProductID == nil:
				s.log.WithField("booking_id", id).Warn("product missing for canceled booking, stock not restored")
			default:
				ok, err := tx.IncrementStock(ctx, *b.ProductID, b.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					s.log.WithFields(logrus.Fields{
						"booking_id": id,
						"product_id": *b.ProductID,
					}).Warn("product missing for canceled booking, stock not restored")
				}
				restored = ok
			}
		}
		return tx.UpdateBookingStatus(ctx, id, status)
	})
	if err != nil {
		return nil, err
	}

	// transisi sudah commit, event harus terbit meskipun re-fetch di bawah gagal
	s.publishStatusChanged(ctx, id, from, status, quantity, restored)

	return s.store.GetBooking(ctx, id)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}
	return s.store.GetBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context) ([]Booking, error) {
	return s.store.ListBookings(ctx)
}

func (s *Service) ListGuests(ctx context.Context) ([]GuestWithBookings, error) {
	return s.store.ListGuests(ctx)
}

func (s *Service) publishCreated(ctx context.Context, b *Booking) {
	if s.createdEvents == nil {
		return
	}
	productID := ""
	productName := ""
	if b.Product != nil {
		productID, productName = b.Product.ID, b.Product.Name
	}
	s.publish(ctx, s.createdEvents, EventBookingCreated, b.ID, BookingCreatedPayload{
		BookingID:   b.ID,
		ProductID:   productID,
		ProductName: productName,
		GuestName:   b.Guest.Name,
		GuestEmail:  b.Guest.Email,
		Quantity:    b.Quantity,
		TotalCost:   b.TotalCost,
		PickupDate:  b.PickupDate,
	})
}

func (s *Service) publishStatusChanged(ctx context.Context, id string, from, to Status, qty int, restored bool) {
	if s.statusEvents == nil {
		return
	}
	s.publish(ctx, s.statusEvents, EventBookingStatusChanged, id, BookingStatusChangedPayload{
		BookingID:     id,
		From:          string(from),
		To:            string(to),
		Quantity:      qty,
		StockRestored: restored,
	})
}

func (s *Service) publish(ctx context.Context, pub EventPublisher, eventType, bookingID string, payload any) {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.producer,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: bookingID,
		Payload:       kafkax.MustMarshal(payload),
	}
	pub.Publish(PartitionKey(bookingID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
