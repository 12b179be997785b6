package form

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etalase/etalase/internal/catalog/fields"
)

// Option is one {value, label} pair of a table-relation dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LookupSource fetches live options for table-relation fields.
type LookupSource interface {
	Options(ctx context.Context, cfg fields.TableConfig) ([]Option, error)
}

type lookupSource struct {
	pool *pgxpool.Pool
}

// NewLookupSource returns a LookupSource reading distinct rows from the
// configured external table.
func NewLookupSource(pool *pgxpool.Pool) LookupSource {
	return &lookupSource{pool: pool}
}

// identPattern restricts configured table and column names to plain SQL
// identifiers; they are interpolated into the query text.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func (s *lookupSource) Options(ctx context.Context, cfg fields.TableConfig) ([]Option, error) {
	for _, ident := range []string{cfg.TableName, cfg.ValueColumn, cfg.LabelColumn} {
		if !identPattern.MatchString(ident) {
			return nil, fmt.Errorf("form: invalid lookup identifier %q", ident)
		}
	}
	orderBy := cfg.LabelColumn
	if cfg.OrderBy != "" {
		if !identPattern.MatchString(cfg.OrderBy) {
			return nil, fmt.Errorf("form: invalid lookup identifier %q", cfg.OrderBy)
		}
		orderBy = cfg.OrderBy
	}

	query := fmt.Sprintf(
		`SELECT DISTINCT %[1]s::text, %[2]s::text FROM %[3]s ORDER BY %[2]s`,
		quoteIdent(cfg.ValueColumn), quoteIdent(cfg.LabelColumn), quoteIdent(cfg.TableName))
	if orderBy != cfg.LabelColumn {
		query = fmt.Sprintf(
			`SELECT %[1]s::text, %[2]s::text FROM (SELECT DISTINCT %[1]s, %[2]s, %[4]s FROM %[3]s) t ORDER BY %[4]s`,
			quoteIdent(cfg.ValueColumn), quoteIdent(cfg.LabelColumn), quoteIdent(cfg.TableName), quoteIdent(orderBy))
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("form: lookup %s: %w", cfg.TableName, err)
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var opt Option
		if err := rows.Scan(&opt.Value, &opt.Label); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func quoteIdent(ident string) string {
	return `"` + ident + `"`
}
