package warranty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etalase/etalase/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, tenantID int64) ([]Template, error)
	GetByID(ctx context.Context, tenantID, id int64) (Template, error)
	GetDefault(ctx context.Context, tenantID int64) (Template, error)
	Create(ctx context.Context, tpl Template) (Template, error)
	Update(ctx context.Context, tpl Template) error
	Delete(ctx context.Context, tenantID, id int64) error
	ClearDefault(ctx context.Context, tenantID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const templateColumns = `id, tenant_id, name, body, duration_days, is_default, created_at, updated_at`

func scanTemplate(row pgx.Row) (Template, error) {
	var tpl Template
	err := row.Scan(&tpl.ID, &tpl.TenantID, &tpl.Name, &tpl.Body, &tpl.DurationDays,
		&tpl.IsDefault, &tpl.CreatedAt, &tpl.UpdatedAt)
	return tpl, err
}

func (r *repository) List(ctx context.Context, tenantID int64) ([]Template, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+templateColumns+` FROM warranty_templates
		 WHERE tenant_id = $1
		 ORDER BY is_default DESC, name ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tpls []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		tpls = append(tpls, tpl)
	}
	return tpls, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, tenantID, id int64) (Template, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM warranty_templates WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	tpl, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, fmt.Errorf("%w: warranty template %d", httpx.ErrNotFound, id)
	}
	return tpl, err
}

func (r *repository) GetDefault(ctx context.Context, tenantID int64) (Template, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM warranty_templates
		 WHERE tenant_id = $1 AND is_default ORDER BY updated_at DESC LIMIT 1`, tenantID)
	tpl, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, fmt.Errorf("%w: no default warranty template", httpx.ErrNotFound)
	}
	return tpl, err
}

func (r *repository) Create(ctx context.Context, tpl Template) (Template, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO warranty_templates
		 (tenant_id, name, body, duration_days, is_default, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$6)
		 RETURNING id, created_at, updated_at`,
		tpl.TenantID, tpl.Name, tpl.Body, tpl.DurationDays, tpl.IsDefault, now)
	if err := row.Scan(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (r *repository) Update(ctx context.Context, tpl Template) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE warranty_templates SET
		   name = $3, body = $4, duration_days = $5, is_default = $6, updated_at = $7
		 WHERE tenant_id = $1 AND id = $2`,
		tpl.TenantID, tpl.ID, tpl.Name, tpl.Body, tpl.DurationDays, tpl.IsDefault, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: warranty template %d", httpx.ErrNotFound, tpl.ID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM warranty_templates WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: warranty template %d", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *repository) ClearDefault(ctx context.Context, tenantID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE warranty_templates SET is_default = FALSE, updated_at = $2
		 WHERE tenant_id = $1 AND is_default`, tenantID, time.Now())
	return err
}
