package services

import "strings"

// RawRow is one parsed spreadsheet row: header name to cell value, untyped.
// Rows are never mutated after the parser produces them.
type RawRow map[string]string

// Value returns the trimmed cell for the given field. Lookup is exact first,
// then case-insensitive, since uploaded sheets disagree on header casing
// (policeId vs policeID and friends).
func (r RawRow) Value(field string) string {
	if v, ok := r[field]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range r {
		if strings.EqualFold(k, field) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Has reports whether the row carries the field at all, regardless of value.
func (r RawRow) Has(field string) bool {
	if _, ok := r[field]; ok {
		return true
	}
	for k := range r {
		if strings.EqualFold(k, field) {
			return true
		}
	}
	return false
}

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	ErrKindMissingField ErrorKind = "missing_field"
	ErrKindInvalidPhone ErrorKind = "invalid_phone"
	ErrKindInvalidDate  ErrorKind = "invalid_date"
	ErrKindFutureDate   ErrorKind = "future_date"
	ErrKindDuplicate    ErrorKind = "duplicate"
)

// RowError is one detected rule violation, tied to a 1-based data row
// (header excluded). Message is the exact string shown on the report screen.
type RowError struct {
	Row     int       `json:"row"`
	Field   string    `json:"field,omitempty"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationResult is the outcome of validating a full row sequence.
type ValidationResult struct {
	Valid  bool
	Errors []RowError
}

// Messages flattens the errors to display strings in emission order. This is
// the serialized form handed to the report screen.
func (r ValidationResult) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// ImportResult is the outcome of a bulk import. When Valid is false, Report
// carries the full validation report and nothing was persisted. When Valid
// is true, Imported is the number of rows written.
type ImportResult struct {
	Valid    bool     `json:"valid"`
	Imported int      `json:"imported"`
	Report   []string `json:"report,omitempty"`
}

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}
