package booking

import (
	"context"

	"github.com/freshflower/storefront/internal/catalog"
)

// Store adalah batas persistence milik lifecycle manager. Operasi yang
// menyentuh stok + booking sekaligus berjalan di dalam satu InTx.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error

	GetBooking(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListGuests(ctx context.Context) ([]GuestWithBookings, error)
}

type Tx interface {
	// LiveProduct mengambil produk non-deleted dengan row lock.
	LiveProduct(ctx context.Context, id string) (*catalog.Product, error)

	// DecrementStock mengurangi stok hanya jika cukup; ErrInsufficientStock jika tidak.
	DecrementStock(ctx context.Context, id string, qty int) error

	// IncrementStock mengembalikan stok; false jika referensi produk tidak resolve.
	IncrementStock(ctx context.Context, id string, qty int) (bool, error)

	// UpsertGuest reuse guest per email, buat baru kalau belum ada.
	UpsertGuest(ctx context.Context, in GuestInput) (*Guest, error)

	InsertBooking(ctx context.Context, b *Booking) error
	BookingForUpdate(ctx context.Context, id string) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, st Status) error
}
