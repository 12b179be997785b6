// Package enrich merges category field configuration with the global field
// library into the renderable field list.
package enrich

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/fields"
)

// Source records where an enriched field's shape came from.
type Source string

const (
	SourceLibrary Source = "library"
	SourceInline  Source = "inline"
)

// EnrichedField is the fully-resolved, render-ready union of a field
// definition and the per-category requirement. It is derived fresh on every
// Resolve call and never persisted.
type EnrichedField struct {
	EntryID     string                 `json:"entry_id"`
	FieldID     int64                  `json:"field_id,omitempty"`
	Key         string                 `json:"key"`
	Label       string                 `json:"label"`
	Type        fields.FieldType       `json:"type"`
	Options     []string               `json:"options,omitempty"`
	TableConfig *fields.TableConfig    `json:"table_config,omitempty"`
	Placeholder string                 `json:"placeholder,omitempty"`
	HelpText    string                 `json:"help_text,omitempty"`
	Requirement categories.Requirement `json:"requirement"`
	Source      Source                 `json:"source"`
	// Unresolved marks a dangling reference without inline fallback. The
	// renderer shows a "field not found" state for it instead of crashing.
	Unresolved bool `json:"unresolved,omitempty"`
}

// FieldLookup is the library slice the resolver needs. Satisfied by
// *fields.Service, whose listing cache keeps repeated lookups cheap.
type FieldLookup interface {
	GetByID(ctx context.Context, tenantID, id int64) (fields.FieldDefinition, error)
}

// resolveConcurrency bounds the per-entry fan-out.
const resolveConcurrency = 8

type Resolver struct {
	library FieldLookup
	logger  *slog.Logger
}

func NewResolver(library FieldLookup, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{library: library, logger: logger}
}

// Resolve produces one EnrichedField per configuration entry, in the input
// order. Entries resolve concurrently, and each one is fault-isolated: a
// dangling reference or a failed lookup degrades that entry to its inline
// fallback or an unresolved placeholder, never the whole list. Hidden
// entries are resolved like any other; filtering by requirement is the
// renderer's concern.
func (r *Resolver) Resolve(ctx context.Context, tenantID int64, entries []categories.FieldConfigEntry) []EnrichedField {
	results := make([]EnrichedField, len(entries))

	var g errgroup.Group
	g.SetLimit(resolveConcurrency)
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = r.resolveEntry(ctx, tenantID, entry)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Resolver) resolveEntry(ctx context.Context, tenantID int64, entry categories.FieldConfigEntry) EnrichedField {
	switch entry.Kind {
	case categories.FieldRefReference:
		def, err := r.library.GetByID(ctx, tenantID, entry.FieldID)
		if err == nil {
			return fromDefinition(entry, def)
		}
		r.logger.Debug("field reference did not resolve",
			"entry_id", entry.ID, "field_id", entry.FieldID, "error", err)
		if entry.Inline != nil {
			return fromInline(entry)
		}
		return placeholder(entry)
	case categories.FieldRefInline:
		if entry.Inline != nil {
			return fromInline(entry)
		}
		return placeholder(entry)
	default:
		return placeholder(entry)
	}
}

func fromDefinition(entry categories.FieldConfigEntry, def fields.FieldDefinition) EnrichedField {
	return EnrichedField{
		EntryID:     entry.ID,
		FieldID:     def.ID,
		Key:         def.Key,
		Label:       def.Label,
		Type:        def.Type,
		Options:     def.Options,
		TableConfig: def.TableConfig,
		Placeholder: def.Placeholder,
		HelpText:    def.HelpText,
		Requirement: entry.Requirement,
		Source:      SourceLibrary,
	}
}

func fromInline(entry categories.FieldConfigEntry) EnrichedField {
	inline := entry.Inline
	return EnrichedField{
		EntryID:     entry.ID,
		FieldID:     entry.FieldID,
		Key:         inline.Key,
		Label:       inline.Name,
		Type:        inline.Type,
		Options:     inline.Options,
		Placeholder: inline.Placeholder,
		Requirement: entry.Requirement,
		Source:      SourceInline,
	}
}

func placeholder(entry categories.FieldConfigEntry) EnrichedField {
	return EnrichedField{
		EntryID:     entry.ID,
		FieldID:     entry.FieldID,
		Label:       "Field not found",
		Requirement: entry.Requirement,
		Unresolved:  true,
	}
}
