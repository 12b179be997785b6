package fields

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
	List(ctx context.Context, tenantID int64) ([]FieldDefinition, error)
	GetByID(ctx context.Context, tenantID, id int64) (FieldDefinition, error)
	GetByKey(ctx context.Context, tenantID int64, key string) (FieldDefinition, error)
	Create(ctx context.Context, def FieldDefinition) (FieldDefinition, error)
	Update(ctx context.Context, def FieldDefinition) error
	Delete(ctx context.Context, tenantID, id int64) error
	CountRefs(ctx context.Context, tenantID, id int64) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const fieldColumns = `id, tenant_id, key, label, category, field_type, options, table_config,
	placeholder, help_text, is_system, display_order, created_at, updated_at`

func scanField(row pgx.Row) (FieldDefinition, error) {
	var (
		def      FieldDefinition
		options  []byte
		tableCfg []byte
	)
	err := row.Scan(&def.ID, &def.TenantID, &def.Key, &def.Label, &def.Category, &def.Type,
		&options, &tableCfg, &def.Placeholder, &def.HelpText, &def.IsSystem,
		&def.DisplayOrder, &def.CreatedAt, &def.UpdatedAt)
	if err != nil {
		return FieldDefinition{}, err
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &def.Options); err != nil {
			return FieldDefinition{}, fmt.Errorf("decode options: %w", err)
		}
	}
	if len(tableCfg) > 0 {
		var cfg TableConfig
		if err := json.Unmarshal(tableCfg, &cfg); err != nil {
			return FieldDefinition{}, fmt.Errorf("decode table config: %w", err)
		}
		def.TableConfig = &cfg
	}
	return def, nil
}

func (r *repository) List(ctx context.Context, tenantID int64) ([]FieldDefinition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+fieldColumns+` FROM field_definitions
		 WHERE tenant_id = $1
		 ORDER BY display_order ASC, key ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []FieldDefinition
	for rows.Next() {
		def, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, tenantID, id int64) (FieldDefinition, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+fieldColumns+` FROM field_definitions WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	def, err := scanField(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return FieldDefinition{}, fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
	}
	return def, err
}

func (r *repository) GetByKey(ctx context.Context, tenantID int64, key string) (FieldDefinition, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+fieldColumns+` FROM field_definitions WHERE tenant_id = $1 AND key = $2`,
		tenantID, key)
	def, err := scanField(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return FieldDefinition{}, fmt.Errorf("%w: field %q", httpx.ErrNotFound, key)
	}
	return def, err
}

func (r *repository) Create(ctx context.Context, def FieldDefinition) (FieldDefinition, error) {
	options, tableCfg, err := encodeJSONColumns(def)
	if err != nil {
		return FieldDefinition{}, err
	}

	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO field_definitions
		 (tenant_id, key, label, category, field_type, options, table_config,
		  placeholder, help_text, is_system, display_order, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12)
		 RETURNING id, created_at, updated_at`,
		def.TenantID, def.Key, def.Label, def.Category, def.Type, options, tableCfg,
		def.Placeholder, def.HelpText, def.IsSystem, def.DisplayOrder, now)
	if err := row.Scan(&def.ID, &def.CreatedAt, &def.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return FieldDefinition{}, fmt.Errorf("%w: field key %q already exists", httpx.ErrDuplicateKey, def.Key)
		}
		return FieldDefinition{}, err
	}
	return def, nil
}

func (r *repository) Update(ctx context.Context, def FieldDefinition) error {
	options, tableCfg, err := encodeJSONColumns(def)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE field_definitions SET
		   label = $3, category = $4, field_type = $5, options = $6, table_config = $7,
		   placeholder = $8, help_text = $9, display_order = $10, updated_at = $11
		 WHERE tenant_id = $1 AND id = $2`,
		def.TenantID, def.ID, def.Label, def.Category, def.Type, options, tableCfg,
		def.Placeholder, def.HelpText, def.DisplayOrder, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: field %d", httpx.ErrNotFound, def.ID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM field_definitions WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
	}
	return nil
}

// CountRefs counts category configurations still referencing the field.
// The configuration blob is a JSONB array of entries carrying field_id.
func (r *repository) CountRefs(ctx context.Context, tenantID, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories
		 WHERE tenant_id = $1
		   AND field_config @> jsonb_build_array(jsonb_build_object('field_id', $2::bigint))`,
		tenantID, id).Scan(&count)
	return count, err
}

func encodeJSONColumns(def FieldDefinition) (options, tableCfg []byte, err error) {
	if len(def.Options) > 0 {
		options, err = json.Marshal(def.Options)
		if err != nil {
			return nil, nil, fmt.Errorf("encode options: %w", err)
		}
	}
	if def.TableConfig != nil {
		tableCfg, err = json.Marshal(def.TableConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("encode table config: %w", err)
		}
	}
	return options, tableCfg, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
