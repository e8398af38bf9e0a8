package zenputsync

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormKind selects the record family. Each kind has its own Zenput form
// template, destination table, catalog and label-matching rules.
type FormKind string

const (
	KindOperativas FormKind = "operativas"
	KindSeguridad  FormKind = "seguridad"
)

const (
	defaultFormOperativas = 877138
	defaultFormSeguridad  = 877139
)

type Submission struct {
	ID       json.Number        `json:"id"`
	Metadata SubmissionMetadata `json:"smetadata"`
	Answers  []Answer           `json:"answers"`
}

// SubmissionId is the immutable external identifier, stored as text.
func (s Submission) SubmissionId() string {
	return strings.TrimSpace(s.ID.String())
}

type SubmissionMetadata struct {
	Location      *SubmissionLocation `json:"location"`
	CreatedBy     SubmissionUser      `json:"created_by"`
	DateSubmitted string              `json:"date_submitted"`
	Lat           *float64            `json:"lat"`
	Lon           *float64            `json:"lon"`
}

// LocationId returns "" when the submission carries no usable location.
func (m SubmissionMetadata) LocationId() string {
	if m.Location == nil {
		return ""
	}
	return strings.TrimSpace(m.Location.ID.String())
}

type SubmissionLocation struct {
	ID json.Number `json:"id"`
}

type SubmissionUser struct {
	DisplayName string `json:"display_name"`
}

// Answer is one labeled field of a submission. Value stays raw: Zenput mixes
// numbers, strings and nulls across field types, and only formula fields
// carry the numeric values the resolver reads.
type Answer struct {
	FieldType string          `json:"field_type"`
	Title     string          `json:"title"`
	Value     json.RawMessage `json:"value"`
}

const fieldTypeFormula = "formula"

func (a Answer) numericValue() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(string(a.Value))
	if raw == "" || raw == "null" {
		return decimal.Decimal{}, false
	}
	raw = strings.Trim(raw, `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

var submissionTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseSubmissionTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range submissionTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
