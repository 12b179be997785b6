package form

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/fields"
)

func textField(key string, req categories.Requirement) enrich.EnrichedField {
	return enrich.EnrichedField{
		EntryID: key, Key: key, Label: key, Type: fields.TypeText, Requirement: req,
	}
}

func TestValidateCollectsAllFailuresAtOnce(t *testing.T) {
	enriched := []enrich.EnrichedField{
		textField("warna", categories.RequirementRequired),
		textField("catatan", categories.RequirementOptional),
		{EntryID: "e3", Key: "ram", Label: "RAM", Type: fields.TypeSelect,
			Options: []string{"4GB", "8GB"}, Requirement: categories.RequirementRequired},
		{EntryID: "e4", Key: "harga_modal", Label: "Harga Modal", Type: fields.TypeCurrency,
			Requirement: categories.RequirementOptional},
	}

	failures := Validate(enriched, map[string]string{
		"ram":         "16GB", // outside options
		"harga_modal": "abc",  // not a number
		// warna missing entirely
	})

	require.Len(t, failures, 3)
	require.Contains(t, failures, "warna")
	require.Contains(t, failures, "ram")
	require.Contains(t, failures, "harga_modal")
	require.NotContains(t, failures, "catatan")
}

func TestValidateRequiredOnlyBitesWhenEmpty(t *testing.T) {
	enriched := []enrich.EnrichedField{textField("warna", categories.RequirementRequired)}

	require.Empty(t, Validate(enriched, map[string]string{"warna": "Hitam"}))
	require.Len(t, Validate(enriched, map[string]string{"warna": "   "}), 1)
	require.Len(t, Validate(enriched, nil), 1)
}

func TestValidateSkipsHiddenAndUnresolved(t *testing.T) {
	enriched := []enrich.EnrichedField{
		textField("internal_note", categories.RequirementHidden),
		{EntryID: "e2", Key: "", Label: "Field not found",
			Requirement: categories.RequirementRequired, Unresolved: true},
	}
	require.Empty(t, Validate(enriched, nil))
}

func TestValidateDeviceIdentifierExactLength(t *testing.T) {
	enriched := []enrich.EnrichedField{
		textField("imei", categories.RequirementRequired),
		textField("imei2", categories.RequirementOptional),
	}

	failures := Validate(enriched, map[string]string{"imei": "123456789012345"})
	require.Empty(t, failures)

	for _, bad := range []string{"1234", "1234567890123456", "12345678901234a"} {
		failures = Validate(enriched, map[string]string{"imei": bad})
		require.Contains(t, failures, "imei", "value %q must fail", bad)
	}

	// Optional second identifier: empty passes, short fails.
	failures = Validate(enriched, map[string]string{"imei": "123456789012345", "imei2": "99"})
	require.Contains(t, failures, "imei2")
}

func TestValidateSelectAcceptsConfiguredOption(t *testing.T) {
	enriched := []enrich.EnrichedField{{
		EntryID: "e1", Key: "kondisi", Label: "Kondisi", Type: fields.TypeSelect,
		Options: []string{"Baru", "Bekas"}, Requirement: categories.RequirementOptional,
	}}
	require.Empty(t, Validate(enriched, map[string]string{"kondisi": "Bekas"}))
	require.Len(t, Validate(enriched, map[string]string{"kondisi": "Rusak"}), 1)
}

func TestValidateCheckboxBoolean(t *testing.T) {
	enriched := []enrich.EnrichedField{{
		EntryID: "e1", Key: "garansi", Label: "Garansi", Type: fields.TypeCheckbox,
		Requirement: categories.RequirementOptional,
	}}
	require.Empty(t, Validate(enriched, map[string]string{"garansi": "true"}))
	require.Len(t, Validate(enriched, map[string]string{"garansi": "ya"}), 1)
}
