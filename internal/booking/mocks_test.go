package booking

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/freshflower/storefront/internal/catalog"
	kafkax "github.com/freshflower/storefront/internal/kafka"
)

// memStore adalah Store in-memory untuk unit test; InTx tanpa isolasi beneran,
// cukup untuk memverifikasi aturan lifecycle.
type memStore struct {
	products map[string]*catalog.Product
	guests   map[string]*Guest // key: email
	bookings map[string]*Booking
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*catalog.Product{},
		guests:   map[string]*Guest{},
		bookings: map[string]*Booking{},
	}
}

func (m *memStore) addProduct(p catalog.Product) *catalog.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.products[p.ID] = &p
	return &p
}

func (m *memStore) InTx(_ context.Context, fn func(tx Tx) error) error {
	return fn(m)
}

func (m *memStore) LiveProduct(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok || p.IsDeleted {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) DecrementStock(_ context.Context, id string, qty int) error {
	p, ok := m.products[id]
	if !ok || p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (m *memStore) IncrementStock(_ context.Context, id string, qty int) (bool, error) {
	p, ok := m.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += qty
	return true, nil
}

func (m *memStore) UpsertGuest(_ context.Context, in GuestInput) (*Guest, error) {
	if g, ok := m.guests[in.Email]; ok {
		cp := *g
		return &cp, nil
	}
	g := &Guest{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		DeliveryType:    in.DeliveryType,
		ReceiverName:    in.ReceiverName,
		ReceiverPhone:   in.ReceiverPhone,
		ReceiverAddress: in.ReceiverAddress,
	}
	m.guests[in.Email] = g
	cp := *g
	return &cp, nil
}

func (m *memStore) InsertBooking(_ context.Context, b *Booking) error {
	cp := *b
	cp.Product, cp.Guest = nil, nil
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memStore) BookingForUpdate(_ context.Context, id string) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) UpdateBookingStatus(_ context.Context, id string, st Status) error {
	b, ok := m.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = st
	return nil
}

func (m *memStore) GetBooking(_ context.Context, id string) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	if cp.ProductID != nil {
		if p, ok := m.products[*cp.ProductID]; ok {
			pp := *p
			cp.Product = &pp
		}
	}
	for _, g := range m.guests {
		if g.ID == cp.GuestID {
			gg := *g
			cp.Guest = &gg
			break
		}
	}
	return &cp, nil
}

func (m *memStore) ListBookings(ctx context.Context) ([]Booking, error) {
	ids := make([]string, 0, len(m.bookings))
	for id := range m.bookings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Booking, 0, len(ids))
	for _, id := range ids {
		b, _ := m.GetBooking(ctx, id)
		out = append(out, *b)
	}
	return out, nil
}

func (m *memStore) ListGuests(ctx context.Context) ([]GuestWithBookings, error) {
	bookings, _ := m.ListBookings(ctx)
	var out []GuestWithBookings
	for _, g := range m.guests {
		gw := GuestWithBookings{Guest: *g, Bookings: []Booking{}}
		for _, b := range bookings {
			if b.GuestID == g.ID {
				gw.Bookings = append(gw.Bookings, b)
			}
		}
		out = append(out, gw)
	}
	return out, nil
}

// refetchFailStore: transaksi jalan normal, read setelah commit bisa dibuat gagal.
type refetchFailStore struct {
	*memStore
	fail bool
}

func (s *refetchFailStore) GetBooking(ctx context.Context, id string) (*Booking, error) {
	if s.fail {
		return nil, errors.New("connection reset")
	}
	return s.memStore.GetBooking(ctx, id)
}

// mockPublisher merekam envelope yang diterbitkan.
type mockPublisher struct {
	envelopes []Envelope
}

func (p *mockPublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err == nil {
		p.envelopes = append(p.envelopes, env)
	}
}

func (p *mockPublisher) Reset() { p.envelopes = nil }

func unwrapStatusPayload(env Envelope) (BookingStatusChangedPayload, error) {
	return kafkax.UnwrapPayload[BookingStatusChangedPayload](env.Payload)
}
