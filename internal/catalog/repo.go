package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store adalah akses baca/tulis katalog yang dipakai handler HTTP.
type Store interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, in CreateInput) (*Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Product, error)
	SoftDelete(ctx context.Context, id string) error
}

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, catalog_type, detail, price, stock, status, image, is_deleted, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.CatalogType, &p.Detail, &p.Price, &p.Stock,
		&p.Status, &p.Image, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context, f Filter) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE NOT is_deleted`
	args := []any{}
	if f.CatalogType != "" && f.CatalogType != "All" {
		args = append(args, f.CatalogType)
		q += fmt.Sprintf(" AND catalog_type = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		q += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id = $1 AND NOT is_deleted`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Product, error) {
	status := in.Status
	if status == "" {
		status = StatusAvailable
	}
	now := time.Now()
	p := Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		CatalogType: in.CatalogType,
		Detail:      in.Detail,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      status,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products (id, name, catalog_type, detail, price, stock, status, image, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.CatalogType, p.Detail, p.Price, p.Stock, p.Status, p.Image, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// Update mempertahankan price/stock lama saat input tidak mengirimkannya,
// mengikuti perilaku form edit admin.
func (r *Repo) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	price := existing.Price
	if in.Price != nil {
		price = *in.Price
	}
	stock := existing.Stock
	if in.Stock != nil {
		stock = *in.Stock
	}
	image := existing.Image
	if in.Image != "" {
		image = in.Image
	}
	status := in.Status
	if status == "" {
		status = existing.Status
	}

	row := r.DB.QueryRow(ctx, `
		UPDATE products
		SET name=$1, catalog_type=$2, detail=$3, price=$4, stock=$5, status=$6, image=$7, updated_at=NOW()
		WHERE id=$8 AND NOT is_deleted
		RETURNING `+productCols,
		in.Name, in.CatalogType, in.Detail, price, stock, status, image, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

// SoftDelete menandai produk terhapus; booking lama tetap menunjuk produk ini.
func (r *Repo) SoftDelete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE products SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
