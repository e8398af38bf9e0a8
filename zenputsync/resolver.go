package zenputsync

import (
	"strings"

	"github.com/shopspring/decimal"
)

// calificacionTitles are the canonical overall-score field titles, in
// priority order. The operational form labels it "PORCENTAJE %", the safety
// form "CALIFICACION PORCENTAJE %".
var calificacionTitles = []string{
	"PORCENTAJE %",
	"CALIFICACION PORCENTAJE %",
}

// ExtractCalificacionGeneral returns the overall 0-100 score. The first
// formula field whose title equals a canonical label (case-insensitive) wins;
// absence yields null. The value is taken verbatim, no rounding.
func ExtractCalificacionGeneral(answers []Answer) decimal.NullDecimal {
	for _, ans := range answers {
		if ans.FieldType != fieldTypeFormula {
			continue
		}
		title := strings.ToUpper(strings.TrimSpace(ans.Title))
		for _, campo := range calificacionTitles {
			if title == campo {
				if value, ok := ans.numericValue(); ok {
					return decimal.NullDecimal{Decimal: value, Valid: true}
				}
				return decimal.NullDecimal{}
			}
		}
	}
	return decimal.NullDecimal{}
}

// normalizeAreaTitle strips the scoring boilerplate the form builder appends
// to area titles ("CALIFICACION", "PORCENTAJE", "%") and uppercases.
func normalizeAreaTitle(title string) string {
	clean := strings.ToUpper(title)
	clean = strings.ReplaceAll(clean, "CALIFICACION", "")
	clean = strings.ReplaceAll(clean, "CALIFICACIÓN", "")
	clean = strings.ReplaceAll(clean, "PORCENTAJE", "")
	clean = strings.ReplaceAll(clean, "%", "")
	return strings.TrimSpace(clean)
}

// matchAreaCode resolves an area title through the ordered matcher tiers:
// exact normalized match, then substring in either direction. A title that is
// nothing but boilerplate is the record's own overall-score field and
// resolves to the sentinel code.
func matchAreaCode(title string) string {
	clean := normalizeAreaTitle(title)
	if clean == "" {
		return CodigoCalificacionGeneral
	}
	for _, entry := range areaLabels {
		if entry.Label == clean {
			return entry.Codigo
		}
	}
	for _, entry := range areaLabels {
		if strings.Contains(clean, entry.Label) || strings.Contains(entry.Label, clean) {
			return entry.Codigo
		}
	}
	return ""
}

// ExtractAreas collects the area sub-scores of an operational submission.
// First-seen-per-submission precedence: a later duplicate label is ignored.
// Unmapped titles are silently dropped, as is the overall-score sentinel.
func ExtractAreas(answers []Answer) map[string]decimal.Decimal {
	areas := map[string]decimal.Decimal{}
	for _, ans := range answers {
		if ans.FieldType != fieldTypeFormula {
			continue
		}
		if !strings.Contains(strings.ToUpper(ans.Title), "PORCENTAJE") {
			continue
		}
		value, ok := ans.numericValue()
		if !ok {
			continue
		}
		codigo := matchAreaCode(ans.Title)
		if codigo == "" || codigo == CodigoCalificacionGeneral {
			continue
		}
		if _, seen := areas[codigo]; seen {
			continue
		}
		areas[codigo] = value
	}
	return areas
}

// matchKpiCode matches on compound substrings ("<LABEL> PORCENTAJE" or
// "<LABEL> CALIFICACION"): safety-form labels are not boilerplate-stripped
// the way operational ones are, so normalized exact matching does not apply.
func matchKpiCode(upperTitle string) string {
	for _, entry := range kpiLabels {
		if strings.Contains(upperTitle, entry.Label+" PORCENTAJE") ||
			strings.Contains(upperTitle, entry.Label+" CALIFICACION") {
			return entry.Codigo
		}
	}
	return ""
}

// ExtractKpis collects the KPI sub-scores of a safety submission, with the
// same first-seen precedence and silent-drop rules as ExtractAreas.
func ExtractKpis(answers []Answer) map[string]decimal.Decimal {
	kpis := map[string]decimal.Decimal{}
	for _, ans := range answers {
		if ans.FieldType != fieldTypeFormula {
			continue
		}
		value, ok := ans.numericValue()
		if !ok {
			continue
		}
		codigo := matchKpiCode(strings.ToUpper(ans.Title))
		if codigo == "" {
			continue
		}
		if _, seen := kpis[codigo]; seen {
			continue
		}
		kpis[codigo] = value
	}
	return kpis
}
