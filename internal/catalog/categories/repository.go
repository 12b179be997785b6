package categories

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
)

type Repository interface {
	List(ctx context.Context, tenantID int64) ([]Category, error)
	Get(ctx context.Context, tenantID, id int64) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) error
	Delete(ctx context.Context, tenantID, id int64) error
	SaveConfig(ctx context.Context, tenantID, id int64, entries []FieldConfigEntry) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const categoryColumns = `id, tenant_id, name, slug, display_order, is_active, field_config, created_at, updated_at`

func scanCategory(row pgx.Row) (Category, error) {
	var (
		c      Category
		config []byte
	)
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.DisplayOrder, &c.IsActive,
		&config, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Category{}, err
	}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &c.FieldConfig); err != nil {
			return Category{}, fmt.Errorf("decode field config: %w", err)
		}
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, tenantID int64) ([]Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories
		 WHERE tenant_id = $1
		 ORDER BY display_order ASC, name ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) Get(ctx context.Context, tenantID, id int64) (Category, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, category Category) (Category, error) {
	config, err := encodeConfig(category.FieldConfig)
	if err != nil {
		return Category{}, err
	}

	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO categories (tenant_id, name, slug, display_order, is_active, field_config, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		 RETURNING id, created_at, updated_at`,
		category.TenantID, category.Name, category.Slug, category.DisplayOrder,
		category.IsActive, config, now)
	if err := row.Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Category{}, fmt.Errorf("%w: category slug %q already exists", httpx.ErrDuplicateKey, category.Slug)
		}
		return Category{}, err
	}
	return category, nil
}

func (r *repository) Update(ctx context.Context, category Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $3, slug = $4, display_order = $5, is_active = $6, updated_at = $7
		 WHERE tenant_id = $1 AND id = $2`,
		category.TenantID, category.ID, category.Name, category.Slug,
		category.DisplayOrder, category.IsActive, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", httpx.ErrNotFound, category.ID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	return nil
}

// SaveConfig replaces the configuration blob wholesale in one statement, so
// concurrent readers observe either the previous list or the new one, never
// a partial mix.
func (r *repository) SaveConfig(ctx context.Context, tenantID, id int64, entries []FieldConfigEntry) error {
	config, err := encodeConfig(entries)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET field_config = $3, updated_at = $4
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, config, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	return nil
}

func encodeConfig(entries []FieldConfigEntry) ([]byte, error) {
	if entries == nil {
		entries = []FieldConfigEntry{}
	}
	config, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode field config: %w", err)
	}
	return config, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
