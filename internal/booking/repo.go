package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshflower/storefront/internal/catalog"
)

// Repo adalah implementasi Store di atas postgres.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) LiveProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	err := t.tx.QueryRow(ctx, `
		SELECT id, name, catalog_type, detail, price, stock, status, image, is_deleted, created_at, updated_at
		FROM products
		WHERE id = $1 AND NOT is_deleted
		FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.CatalogType, &p.Detail, &p.Price, &p.Stock,
			&p.Status, &p.Image, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock product %s: %w", id, err)
	}
	return &p, nil
}

func (t *pgTx) DecrementStock(ctx context.Context, id string, qty int) error {
	ct, err := t.tx.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (t *pgTx) IncrementStock(ctx context.Context, id string, qty int) (bool, error) {
	ct, err := t.tx.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1`, id, qty)
	if err != nil {
		return false, fmt.Errorf("restore stock %s: %w", id, err)
	}
	return ct.RowsAffected() == 1, nil
}

func (t *pgTx) UpsertGuest(ctx context.Context, in GuestInput) (*Guest, error) {
	// ON CONFLICT per email: guest lama dipakai ulang apa adanya, unique index
	// yang menutup race pembuatan ganda.
	var g Guest
	err := t.tx.QueryRow(ctx, `
		INSERT INTO guests (id, name, email, phone, delivery_type, receiver_name, receiver_phone, receiver_address, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, name, email, phone, delivery_type, receiver_name, receiver_phone, receiver_address, created_at`,
		uuid.NewString(), in.Name, in.Email, in.Phone, in.DeliveryType,
		in.ReceiverName, in.ReceiverPhone, in.ReceiverAddress).
		Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.DeliveryType,
			&g.ReceiverName, &g.ReceiverPhone, &g.ReceiverAddress, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert guest %s: %w", in.Email, err)
	}
	return &g, nil
}

func (t *pgTx) InsertBooking(ctx context.Context, b *Booking) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO bookings (id, product_id, guest_id, quantity, pickup_date, total_cost, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		b.ID, b.ProductID, b.GuestID, b.Quantity, b.PickupDate, b.TotalCost, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (t *pgTx) BookingForUpdate(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := t.tx.QueryRow(ctx, `
		SELECT id, product_id, guest_id, quantity, pickup_date, total_cost, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`, id).
		Scan(&b.ID, &b.ProductID, &b.GuestID, &b.Quantity, &b.PickupDate,
			&b.TotalCost, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking %s: %w", id, err)
	}
	return &b, nil
}

func (t *pgTx) UpdateBookingStatus(ctx context.Context, id string, st Status) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, st)
	if err != nil {
		return fmt.Errorf("update booking status %s: %w", id, err)
	}
	return nil
}

const expandedBookingCols = `
	b.id, b.product_id, b.guest_id, b.quantity, b.pickup_date, b.total_cost, b.status, b.created_at, b.updated_at,
	p.id, p.name, p.catalog_type, p.detail, p.price, p.stock, p.status, p.image, p.is_deleted, p.created_at, p.updated_at,
	g.id, g.name, g.email, g.phone, g.delivery_type, g.receiver_name, g.receiver_phone, g.receiver_address, g.created_at`

func scanExpandedBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var g Guest
	// kolom produk via LEFT JOIN, bisa NULL semua
	var pID, pName, pType, pDetail, pStatus, pImage *string
	var pPrice *float64
	var pStock *int
	var pDeleted *bool
	var pCreated, pUpdated *time.Time

	err := row.Scan(
		&b.ID, &b.ProductID, &b.GuestID, &b.Quantity, &b.PickupDate, &b.TotalCost, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&pID, &pName, &pType, &pDetail, &pPrice, &pStock, &pStatus, &pImage, &pDeleted, &pCreated, &pUpdated,
		&g.ID, &g.Name, &g.Email, &g.Phone, &g.DeliveryType, &g.ReceiverName, &g.ReceiverPhone, &g.ReceiverAddress, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pID != nil {
		b.Product = &catalog.Product{
			ID: *pID, Name: *pName, CatalogType: *pType, Detail: *pDetail,
			Price: *pPrice, Stock: *pStock, Status: *pStatus, Image: *pImage,
			IsDeleted: *pDeleted, CreatedAt: *pCreated, UpdatedAt: *pUpdated,
		}
	}
	b.Guest = &g
	return &b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (*Booking, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+expandedBookingCols+`
		FROM bookings b
		LEFT JOIN products p ON p.id = b.product_id
		JOIN guests g ON g.id = b.guest_id
		WHERE b.id = $1`, id)
	b, err := scanExpandedBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

func (r *Repo) ListBookings(ctx context.Context) ([]Booking, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+expandedBookingCols+`
		FROM bookings b
		LEFT JOIN products p ON p.id = b.product_id
		JOIN guests g ON g.id = b.guest_id
		ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanExpandedBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// RecentBookings dipakai dashboard admin; bukan bagian dari Store.
func (r *Repo) RecentBookings(ctx context.Context, limit int) ([]Booking, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+expandedBookingCols+`
		FROM bookings b
		LEFT JOIN products p ON p.id = b.product_id
		JOIN guests g ON g.id = b.guest_id
		ORDER BY b.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanExpandedBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repo) ListGuests(ctx context.Context) ([]GuestWithBookings, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, email, phone, delivery_type, receiver_name, receiver_phone, receiver_address, created_at
		FROM guests
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []GuestWithBookings
	index := map[string]int{}
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.DeliveryType,
			&g.ReceiverName, &g.ReceiverPhone, &g.ReceiverAddress, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		index[g.ID] = len(guests)
		guests = append(guests, GuestWithBookings{Guest: g, Bookings: []Booking{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	bookings, err := r.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if i, ok := index[b.GuestID]; ok {
			guests[i].Bookings = append(guests[i].Bookings, b)
		}
	}
	return guests, nil
}
