package banners

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etalase/etalase/internal/platform/db"
	"github.com/etalase/etalase/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, tenantID int64) ([]Banner, error)
	Get(ctx context.Context, tenantID int64, id string) (Banner, error)
	Create(ctx context.Context, banner Banner) (Banner, error)
	Update(ctx context.Context, banner Banner) error
	Delete(ctx context.Context, tenantID int64, id string) error
	SavePositions(ctx context.Context, tenantID int64, orderedIDs []string) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const bannerColumns = `id, tenant_id, title, image_url, link_url, position, is_active, created_at, updated_at`

func scanBanner(row pgx.Row) (Banner, error) {
	var b Banner
	err := row.Scan(&b.ID, &b.TenantID, &b.Title, &b.ImageURL, &b.LinkURL,
		&b.Position, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *repository) List(ctx context.Context, tenantID int64) ([]Banner, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bannerColumns+` FROM banners WHERE tenant_id = $1 ORDER BY position ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *repository) Get(ctx context.Context, tenantID int64, id string) (Banner, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bannerColumns+` FROM banners WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	b, err := scanBanner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Banner{}, fmt.Errorf("%w: banner %s", httpx.ErrNotFound, id)
	}
	return b, err
}

func (r *repository) Create(ctx context.Context, banner Banner) (Banner, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO banners (id, tenant_id, title, image_url, link_url, position, is_active, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,
		   COALESCE((SELECT MAX(position) + 1 FROM banners WHERE tenant_id = $2), 0),
		   $6,$7,$7)
		 RETURNING position, created_at, updated_at`,
		banner.ID, banner.TenantID, banner.Title, banner.ImageURL, banner.LinkURL,
		banner.IsActive, now)
	if err := row.Scan(&banner.Position, &banner.CreatedAt, &banner.UpdatedAt); err != nil {
		return Banner{}, err
	}
	return banner, nil
}

func (r *repository) Update(ctx context.Context, banner Banner) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE banners SET title = $3, image_url = $4, link_url = $5, is_active = $6, updated_at = $7
		 WHERE tenant_id = $1 AND id = $2`,
		banner.TenantID, banner.ID, banner.Title, banner.ImageURL, banner.LinkURL,
		banner.IsActive, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: banner %s", httpx.ErrNotFound, banner.ID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID int64, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM banners WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: banner %s", httpx.ErrNotFound, id)
	}
	return nil
}

// SavePositions rewrites every banner's position inside one transaction, so
// readers see the old order or the new one, never a mix.
func (r *repository) SavePositions(ctx context.Context, tenantID int64, orderedIDs []string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now()
		for pos, id := range orderedIDs {
			tag, err := tx.Exec(ctx,
				`UPDATE banners SET position = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
				tenantID, id, pos, now)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: banner %s", httpx.ErrNotFound, id)
			}
		}
		return nil
	})
}
