package careplan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testCatalog = Catalog{
	{ID: "hygiene", Label: "Higiene personal"},
	{ID: "meds", Label: "Medicamentos"},
	{ID: "meals", Label: "Comidas"},
}

func TestEncode_Format(t *testing.T) {
	got := Encode("Cuidado de mi madre", []string{"hygiene", "meds"}, testCatalog)

	want := "Cuidado de mi madre\n\n" +
		"[PLAN DE CUIDADO]\n" +
		"- Higiene personal\n" +
		"- Medicamentos\n" +
		"\n" +
		`---SERVICES---["hygiene","meds"]---SERVICES---`
	require.Equal(t, want, got)
}

func TestEncode_EmptySelectionOmitsBlock(t *testing.T) {
	got := Encode("solo texto", nil, testCatalog)
	require.Equal(t, "solo texto", got)
	require.NotContains(t, got, "[PLAN DE CUIDADO]")
	require.NotContains(t, got, "---SERVICES---")
}

func TestEncode_UnknownIDsDropped(t *testing.T) {
	got := Encode("d", []string{"hygiene", "ghost", "meals"}, testCatalog)
	plan := Decode(got)
	require.Equal(t, []string{"hygiene", "meals"}, plan.ServiceIDs)
	require.NotContains(t, got, "ghost")
}

func TestEncode_AllUnknownIsNoBlock(t *testing.T) {
	got := Encode("d", []string{"ghost"}, testCatalog)
	require.Equal(t, "d", got)
}

func TestEncode_NoDescription(t *testing.T) {
	got := Encode("", []string{"meds"}, testCatalog)
	require.True(t, strings.HasPrefix(got, "[PLAN DE CUIDADO]\n"))
	plan := Decode(got)
	require.Empty(t, plan.Description)
	require.Equal(t, []string{"meds"}, plan.ServiceIDs)
}

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		desc string
		ids  []string
	}{
		{"single", "texto libre", []string{"meals"}},
		{"several ordered", "a\nb", []string{"meds", "hygiene", "meals"}},
		{"empty description", "", []string{"hygiene"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := Encode(tt.desc, tt.ids, testCatalog)
			plan := Decode(details)
			require.Equal(t, tt.ids, plan.ServiceIDs)
			require.Equal(t, strings.TrimSpace(tt.desc), plan.Description)
		})
	}
}

func TestDecode_ReencodeIsByteIdentical(t *testing.T) {
	details := Encode("desc", []string{"hygiene", "meals"}, testCatalog)
	again := Decode(details).Encode(testCatalog)
	require.Equal(t, details, again)
}

func TestDecode_NoMarkersIsFreeText(t *testing.T) {
	plan := Decode("just a note about schedules")
	require.Empty(t, plan.ServiceIDs)
	require.Equal(t, "just a note about schedules", plan.Description)
}

func TestDecode_MalformedJSONIsEmptyList(t *testing.T) {
	details := "x\n\n[PLAN DE CUIDADO]\n- a\n\n---SERVICES---[not json---SERVICES---"
	plan := Decode(details)
	require.Empty(t, plan.ServiceIDs)
	require.Equal(t, "x", plan.Description)
}

func TestDecode_UnpairedMarker(t *testing.T) {
	plan := Decode("text ---SERVICES---[\"a\"]")
	require.Empty(t, plan.ServiceIDs)
}

func TestDefaultCatalog_Lookup(t *testing.T) {
	label, ok := DefaultCatalog.Label("meals")
	require.True(t, ok)
	require.NotEmpty(t, label)

	_, ok = DefaultCatalog.Label("nope")
	require.False(t, ok)
}
