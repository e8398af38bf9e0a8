package zenputsync

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func formula(title, value string) Answer {
	return Answer{FieldType: fieldTypeFormula, Title: title, Value: json.RawMessage(value)}
}

func TestExtractCalificacionGeneral(t *testing.T) {
	cases := []struct {
		name    string
		answers []Answer
		want    string
		valid   bool
	}{
		{
			name:    "operativas label",
			answers: []Answer{formula("Porcentaje %", "95")},
			want:    "95",
			valid:   true,
		},
		{
			name:    "seguridad label",
			answers: []Answer{formula("CALIFICACION PORCENTAJE %", "87.5")},
			want:    "87.5",
			valid:   true,
		},
		{
			name: "first match wins",
			answers: []Answer{
				formula("PORCENTAJE %", "95"),
				formula("CALIFICACION PORCENTAJE %", "10"),
			},
			want:  "95",
			valid: true,
		},
		{
			name:    "non-formula fields ignored",
			answers: []Answer{{FieldType: "text", Title: "PORCENTAJE %", Value: json.RawMessage("95")}},
			valid:   false,
		},
		{
			name:    "absent label yields null",
			answers: []Answer{formula("PROCESO MARINADO PORCENTAJE %", "88")},
			valid:   false,
		},
		{
			name:    "null value yields null",
			answers: []Answer{formula("PORCENTAJE %", "null")},
			valid:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractCalificacionGeneral(tc.answers)
			if got.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v", got.Valid, tc.valid)
			}
			if !tc.valid {
				return
			}
			want, _ := decimal.NewFromString(tc.want)
			if !got.Decimal.Equal(want) {
				t.Fatalf("score = %s, want %s", got.Decimal, want)
			}
		})
	}
}

func TestMatchAreaCode(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		// exact after boilerplate stripping
		{"PROCESO MARINADO PORCENTAJE %", "PROCESO_MARINADO"},
		{"Proceso Marinado Calificacion", "PROCESO_MARINADO"},
		{"PROCESO MARINADO", "PROCESO_MARINADO"},
		{"CUARTO FRIO 2 PORCENTAJE", "CUARTO_FRIO_2"},
		// substring: title extends the catalog label
		{"CUARTO FRIO 1 ZONA NORTE PORCENTAJE", "CUARTO_FRIO_1"},
		// substring: title is a fragment of the catalog label
		{"ALMACEN PORCENTAJE", "ALMACEN_JARABES"},
		// overall-score sentinel
		{"PORCENTAJE %", CodigoCalificacionGeneral},
		{"Porcentaje", CodigoCalificacionGeneral},
		// unmapped
		{"ZONA DESCONOCIDA PORCENTAJE", ""},
	}

	for _, tc := range cases {
		if got := matchAreaCode(tc.title); got != tc.want {
			t.Errorf("matchAreaCode(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestExtractAreas(t *testing.T) {
	answers := []Answer{
		formula("PORCENTAJE %", "95"), // sentinel, excluded
		formula("PROCESO MARINADO PORCENTAJE %", "88"),
		formula("PROCESO MARINADO PORCENTAJE %", "70"), // duplicate label, ignored
		formula("ZONA DESCONOCIDA PORCENTAJE", "50"),   // unmapped, dropped
		formula("HORNOS CALIFICACION", "40"),           // no percentage marker
		formula("CUARTO FRIO 1 PORCENTAJE", "null"),    // null value
		{FieldType: "text", Title: "ASADORES PORCENTAJE", Value: json.RawMessage("12")},
	}

	areas := ExtractAreas(answers)
	if len(areas) != 1 {
		t.Fatalf("len(areas) = %d, want 1 (%v)", len(areas), areas)
	}
	got, ok := areas["PROCESO_MARINADO"]
	if !ok {
		t.Fatalf("PROCESO_MARINADO missing: %v", areas)
	}
	if !got.Equal(decimal.NewFromInt(88)) {
		t.Fatalf("PROCESO_MARINADO = %s, want 88", got)
	}
}

func TestMatchKpiCode(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"BODEGA PORCENTAJE %", "BODEGA"},
		{"PROGRAMA PROTECCION CIVIL CALIFICACION", "PROTECCION_CIVIL"},
		{"SEGURIDAD AZOTEA PORCENTAJE", "AZOTEA"},
		// compound substring required, bare label does not match
		{"BODEGA", ""},
		{"BODEGA GENERAL", ""},
	}

	for _, tc := range cases {
		if got := matchKpiCode(tc.title); got != tc.want {
			t.Errorf("matchKpiCode(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestExtractKpis(t *testing.T) {
	answers := []Answer{
		formula("BODEGA PORCENTAJE %", "77"),
		formula("BODEGA PORCENTAJE %", "10"), // duplicate label, ignored
		formula("HORNOS CALIFICACION", "64"),
		formula("PATIO TRASERO PORCENTAJE", "33"), // unmapped
	}

	kpis := ExtractKpis(answers)
	if len(kpis) != 2 {
		t.Fatalf("len(kpis) = %d, want 2 (%v)", len(kpis), kpis)
	}
	if !kpis["BODEGA"].Equal(decimal.NewFromInt(77)) {
		t.Fatalf("BODEGA = %s, want 77", kpis["BODEGA"])
	}
	if !kpis["HORNOS"].Equal(decimal.NewFromInt(64)) {
		t.Fatalf("HORNOS = %s, want 64", kpis["HORNOS"])
	}
}

func TestParseSubmissionTime(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"2026-02-10T09:30:00Z", true},
		{"2026-02-10T09:30:00-06:00", true},
		{"2026-02-10T09:30:00", true},
		{"2026-02-10", true},
		{"", false},
		{"not-a-date", false},
	}
	for _, tc := range cases {
		if _, ok := parseSubmissionTime(tc.value); ok != tc.ok {
			t.Errorf("parseSubmissionTime(%q) ok = %v, want %v", tc.value, ok, tc.ok)
		}
	}
}
