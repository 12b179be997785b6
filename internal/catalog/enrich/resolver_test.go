package enrich

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/platform/httpx"
)

type stubLookup struct {
	defs map[int64]fields.FieldDefinition
	errs map[int64]error
}

func (s *stubLookup) GetByID(ctx context.Context, tenantID, id int64) (fields.FieldDefinition, error) {
	if err, ok := s.errs[id]; ok {
		return fields.FieldDefinition{}, err
	}
	if def, ok := s.defs[id]; ok {
		return def, nil
	}
	return fields.FieldDefinition{}, fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
}

func refEntry(id string, fieldID int64, req categories.Requirement) categories.FieldConfigEntry {
	return categories.FieldConfigEntry{
		ID: id, Kind: categories.FieldRefReference, FieldID: fieldID, Requirement: req,
	}
}

func TestResolvePreservesOrderAndMergesRequirement(t *testing.T) {
	lookup := &stubLookup{defs: map[int64]fields.FieldDefinition{
		1: {ID: 1, Key: "warna", Label: "Warna", Type: fields.TypeText, DisplayOrder: 99},
		2: {ID: 2, Key: "ram", Label: "RAM", Type: fields.TypeSelect, Options: []string{"4GB", "8GB"}},
	}}
	r := NewResolver(lookup, nil)

	// Configuration order deliberately disagrees with library display order.
	entries := []categories.FieldConfigEntry{
		refEntry("e1", 2, categories.RequirementRequired),
		refEntry("e2", 1, categories.RequirementHidden),
	}
	enriched := r.Resolve(context.Background(), 1, entries)

	require.Len(t, enriched, 2)
	require.Equal(t, "ram", enriched[0].Key)
	require.Equal(t, categories.RequirementRequired, enriched[0].Requirement)
	require.Equal(t, []string{"4GB", "8GB"}, enriched[0].Options)
	require.Equal(t, SourceLibrary, enriched[0].Source)

	// Hidden entries are still resolved.
	require.Equal(t, "warna", enriched[1].Key)
	require.Equal(t, categories.RequirementHidden, enriched[1].Requirement)
	require.False(t, enriched[1].Unresolved)
}

func TestResolveIsolatesDanglingReference(t *testing.T) {
	lookup := &stubLookup{defs: map[int64]fields.FieldDefinition{
		1: {ID: 1, Key: "warna", Label: "Warna", Type: fields.TypeText},
		3: {ID: 3, Key: "rom", Label: "ROM", Type: fields.TypeText},
	}}
	r := NewResolver(lookup, nil)

	entries := []categories.FieldConfigEntry{
		refEntry("e1", 1, categories.RequirementOptional),
		refEntry("e2", 999, categories.RequirementRequired), // deleted definition
		refEntry("e3", 3, categories.RequirementOptional),
	}
	enriched := r.Resolve(context.Background(), 1, entries)

	require.Len(t, enriched, len(entries), "one bad entry must not shrink the list")
	require.False(t, enriched[0].Unresolved)
	require.True(t, enriched[1].Unresolved)
	require.EqualValues(t, 999, enriched[1].FieldID)
	require.Equal(t, categories.RequirementRequired, enriched[1].Requirement)
	require.False(t, enriched[2].Unresolved)
}

func TestResolveFallsBackToInlineOnDanglingReference(t *testing.T) {
	r := NewResolver(&stubLookup{}, nil)

	entries := []categories.FieldConfigEntry{{
		ID: "e1", Kind: categories.FieldRefReference, FieldID: 42,
		Inline:      &categories.InlineField{Name: "Warna", Key: "warna", Type: fields.TypeText},
		Requirement: categories.RequirementOptional,
	}}
	enriched := r.Resolve(context.Background(), 1, entries)

	require.Len(t, enriched, 1)
	require.False(t, enriched[0].Unresolved)
	require.Equal(t, SourceInline, enriched[0].Source)
	require.Equal(t, "warna", enriched[0].Key)
}

func TestResolveIsolatesLookupFailure(t *testing.T) {
	lookup := &stubLookup{
		defs: map[int64]fields.FieldDefinition{1: {ID: 1, Key: "warna", Type: fields.TypeText}},
		errs: map[int64]error{2: errors.New("backend unavailable")},
	}
	r := NewResolver(lookup, nil)

	enriched := r.Resolve(context.Background(), 1, []categories.FieldConfigEntry{
		refEntry("e1", 1, categories.RequirementOptional),
		refEntry("e2", 2, categories.RequirementOptional),
	})

	require.False(t, enriched[0].Unresolved)
	require.True(t, enriched[1].Unresolved, "transport failure degrades to a placeholder, not an error")
}

func TestResolvePassesInlineEntriesThrough(t *testing.T) {
	r := NewResolver(&stubLookup{}, nil)

	entries := []categories.FieldConfigEntry{{
		ID: "e1", Kind: categories.FieldRefInline,
		Inline: &categories.InlineField{
			Name: "Kondisi", Key: "kondisi", Type: fields.TypeSelect,
			Options: []string{"Baru", "Bekas"}, Placeholder: "Pilih kondisi",
		},
		Requirement: categories.RequirementRequired,
	}}
	enriched := r.Resolve(context.Background(), 1, entries)

	require.Len(t, enriched, 1)
	require.Equal(t, "kondisi", enriched[0].Key)
	require.Equal(t, "Kondisi", enriched[0].Label)
	require.Equal(t, []string{"Baru", "Bekas"}, enriched[0].Options)
	require.Equal(t, "Pilih kondisi", enriched[0].Placeholder)
	require.Equal(t, SourceInline, enriched[0].Source)
}

func TestResolveEmptyConfig(t *testing.T) {
	r := NewResolver(&stubLookup{}, nil)
	require.Empty(t, r.Resolve(context.Background(), 1, nil))
}
