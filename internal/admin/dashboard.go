package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshflower/storefront/internal/booking"
)

type Metrics struct {
	TotalProducts     int               `json:"totalProducts"`
	AvailableProducts int               `json:"availableProducts"`
	SoldProducts      int               `json:"soldProducts"`
	MonthlyRevenue    float64           `json:"monthlyRevenue"`
	RecentBookings    []booking.Booking `json:"recentBookings"`
}

const recentBookingsLimit = 10

// Dashboard menghitung ringkasan back-office: proyeksi baca murni di atas
// products/bookings.
type Dashboard struct {
	DB       *pgxpool.Pool
	Bookings *booking.Repo
}

func (d *Dashboard) Metrics(ctx context.Context) (*Metrics, error) {
	var m Metrics

	err := d.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE NOT is_deleted`).Scan(&m.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	err = d.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock), 0) FROM products`).Scan(&m.AvailableProducts)
	if err != nil {
		return nil, fmt.Errorf("sum stock: %w", err)
	}

	err = d.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE status = $1`,
		booking.StatusDone).Scan(&m.SoldProducts)
	if err != nil {
		return nil, fmt.Errorf("sum sold: %w", err)
	}

	// revenue bulan berjalan, hanya booking Done Order
	err = d.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_cost), 0)
		FROM bookings
		WHERE status = $1
		  AND created_at >= date_trunc('month', NOW())
		  AND created_at < date_trunc('month', NOW()) + INTERVAL '1 month'`,
		booking.StatusDone).Scan(&m.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("sum monthly revenue: %w", err)
	}

	recent, err := d.Bookings.RecentBookings(ctx, recentBookingsLimit)
	if err != nil {
		return nil, err
	}
	m.RecentBookings = recent
	return &m, nil
}
