package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/shared"
)

type Repository interface {
	List(ctx context.Context, tenantID int64, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, tenantID, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, tenant_id, category_id, name, sku, price_retail, price_wholesale,
	price_reseller, discount_percent, attributes, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		attrs []byte
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.CategoryID, &p.Name, &p.SKU,
		&p.PriceRetail, &p.PriceWholesale, &p.PriceReseller, &p.DiscountPercent,
		&attrs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
			return Product{}, fmt.Errorf("decode attributes: %w", err)
		}
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, tenantID int64, filters shared.ListFilters) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1`
	countQuery := `SELECT COUNT(*) FROM products WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d)`, len(args), len(args))
		query += cond
		countQuery += cond
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		cond := fmt.Sprintf(` AND category_id = $%d`, len(args))
		query += cond
		countQuery += cond
	}
	if filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		cond := fmt.Sprintf(` AND is_active = $%d`, len(args))
		query += cond
		countQuery += cond
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset())
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, tenantID, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	attrs, err := encodeAttributes(product.Attributes)
	if err != nil {
		return Product{}, err
	}

	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (tenant_id, category_id, name, sku, price_retail, price_wholesale,
		   price_reseller, discount_percent, attributes, is_active, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)
		 RETURNING id, created_at, updated_at`,
		product.TenantID, product.CategoryID, product.Name, product.SKU,
		product.PriceRetail, product.PriceWholesale, product.PriceReseller,
		product.DiscountPercent, attrs, product.IsActive, now)
	if err := row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Product{}, fmt.Errorf("%w: SKU %q already exists", httpx.ErrDuplicateKey, product.SKU)
		}
		return Product{}, err
	}
	return product, nil
}

func (r *repository) Update(ctx context.Context, product Product) error {
	attrs, err := encodeAttributes(product.Attributes)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET category_id = $3, name = $4, sku = $5, price_retail = $6,
		   price_wholesale = $7, price_reseller = $8, discount_percent = $9,
		   attributes = $10, is_active = $11, updated_at = $12
		 WHERE tenant_id = $1 AND id = $2`,
		product.TenantID, product.ID, product.CategoryID, product.Name, product.SKU,
		product.PriceRetail, product.PriceWholesale, product.PriceReseller,
		product.DiscountPercent, attrs, product.IsActive, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU %q already exists", httpx.ErrDuplicateKey, product.SKU)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", httpx.ErrNotFound, product.ID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return nil
}

func encodeAttributes(attrs map[string]string) ([]byte, error) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode attributes: %w", err)
	}
	return raw, nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "sku":
		return "sku " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
