package categories

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/catalog/fields"
)

func TestFieldConfigEntryDecodesTaggedFormat(t *testing.T) {
	raw := `{"id":"e1","kind":"reference","field_id":42,"requirement":"required"}`

	var entry FieldConfigEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	require.Equal(t, FieldRefReference, entry.Kind)
	require.EqualValues(t, 42, entry.FieldID)
	require.Equal(t, RequirementRequired, entry.Requirement)
}

func TestFieldConfigEntryDecodesLegacyReference(t *testing.T) {
	raw := `{"id":"e1","fieldId":42}`

	var entry FieldConfigEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	require.Equal(t, FieldRefReference, entry.Kind)
	require.EqualValues(t, 42, entry.FieldID)
	require.Nil(t, entry.Inline)
	require.Equal(t, RequirementOptional, entry.Requirement, "missing requirement defaults to optional")
}

func TestFieldConfigEntryDecodesLegacyInline(t *testing.T) {
	raw := `{"id":"e2","name":"Warna","key":"warna","type":"select","options":["Hitam","Putih"],"requirement":"hidden"}`

	var entry FieldConfigEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	require.Equal(t, FieldRefInline, entry.Kind)
	require.Zero(t, entry.FieldID)
	require.NotNil(t, entry.Inline)
	require.Equal(t, "warna", entry.Inline.Key)
	require.Equal(t, fields.TypeSelect, entry.Inline.Type)
	require.Equal(t, []string{"Hitam", "Putih"}, entry.Inline.Options)
	require.Equal(t, RequirementHidden, entry.Requirement)
}

func TestFieldConfigEntryReferenceKeepsInlineFallback(t *testing.T) {
	raw := `{"id":"e3","field_id":7,"name":"RAM","key":"ram","type":"text","requirement":"optional"}`

	var entry FieldConfigEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	require.Equal(t, FieldRefReference, entry.Kind)
	require.EqualValues(t, 7, entry.FieldID)
	require.NotNil(t, entry.Inline, "inline data rides along as the dangling-reference fallback")
	require.Equal(t, "ram", entry.Inline.Key)
}

func TestFieldConfigEntryRoundTripsAsTagged(t *testing.T) {
	raw := `{"id":"e1","fieldId":42,"requirement":"required"}`

	var entry FieldConfigEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))

	out, err := json.Marshal(entry)
	require.NoError(t, err)

	var again FieldConfigEntry
	require.NoError(t, json.Unmarshal(out, &again))
	require.Equal(t, entry, again)

	// The emitted form is the tagged one.
	var wire map[string]any
	require.NoError(t, json.Unmarshal(out, &wire))
	require.Equal(t, "reference", wire["kind"])
	require.Contains(t, wire, "field_id")
	require.NotContains(t, wire, "fieldId")
}
