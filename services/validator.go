package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// DuplicateChecker answers whether a camera with the given duplicate-key
// triple already exists in the remote store.
type DuplicateChecker interface {
	ExistsByDeviceAndLocation(ctx context.Context, deviceName, latitude, longitude string) (bool, error)
}

// ValidatorConfig controls which fields and checks the validator enforces.
// Uploaded sheets have drifted over time (policeId vs policeID, date checks
// coming and going), so the rule set is configuration rather than hardcoded.
type ValidatorConfig struct {
	RequiredFields  []string
	PhoneField      string
	DateField       string
	DeviceNameField string
	LatitudeField   string
	LongitudeField  string
	CheckFutureDate bool
	CheckDuplicates bool
	// Now supplies the clock for the future-date check; tests override it.
	Now func() time.Time
}

// DefaultValidatorConfig returns the full consolidated rule set.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		RequiredFields: []string{
			"ownerName",
			"phoneNumber",
			"deviceName",
			"deviceType",
			"latitude",
			"longitude",
			"address",
			"city",
			"organization",
			"workingCondition",
			"policeId",
			"username",
			"dateChecked",
		},
		PhoneField:      "phoneNumber",
		DateField:       "dateChecked",
		DeviceNameField: "deviceName",
		LatitudeField:   "latitude",
		LongitudeField:  "longitude",
		CheckFutureDate: true,
		CheckDuplicates: true,
		Now:             time.Now,
	}
}

// RecordValidator validates parsed camera rows against the required-field,
// format and duplicate rules. It never mutates the rows and never persists
// anything; validation errors are returned as data, not Go errors.
type RecordValidator struct {
	cfg     ValidatorConfig
	checker DuplicateChecker
	logger  *zap.Logger
}

func NewRecordValidator(checker DuplicateChecker, logger *zap.Logger) *RecordValidator {
	return NewRecordValidatorWithConfig(DefaultValidatorConfig(), checker, logger)
}

func NewRecordValidatorWithConfig(cfg ValidatorConfig, checker DuplicateChecker, logger *zap.Logger) *RecordValidator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &RecordValidator{cfg: cfg, checker: checker, logger: logger}
}

// Validate checks every row and aggregates every violation; it never stops
// at the first problem so the report covers the whole file in one pass.
// Emission order is row-major: required fields in configured order, then
// phone format, then date format/range, then the duplicate lookup.
//
// The returned error is infrastructure only: it aggregates duplicate-lookup
// failures. A failed lookup on one row does not stop the checks for later
// rows, but any such failure means the result cannot be trusted for import.
func (v *RecordValidator) Validate(ctx context.Context, rows []RawRow) (ValidationResult, error) {
	var result ValidationResult
	var lookupErrs []error

	today := midnightUTC(v.cfg.Now())

	for i, row := range rows {
		rowNo := i + 1 // 1-based, header excluded

		for _, field := range v.cfg.RequiredFields {
			if row.Value(field) == "" {
				result.Errors = append(result.Errors, RowError{
					Row:     rowNo,
					Field:   field,
					Kind:    ErrKindMissingField,
					Message: fmt.Sprintf("Row %d is missing value for %q.", rowNo, field),
				})
			}
		}

		if phone := row.Value(v.cfg.PhoneField); phone != "" && !phonePattern.MatchString(phone) {
			result.Errors = append(result.Errors, RowError{
				Row:     rowNo,
				Field:   v.cfg.PhoneField,
				Kind:    ErrKindInvalidPhone,
				Message: fmt.Sprintf("Row %d has an invalid phone number: %q.", rowNo, phone),
			})
		}

		if date := row.Value(v.cfg.DateField); date != "" {
			result.Errors = append(result.Errors, v.checkDate(rowNo, date, today)...)
		}

		if v.cfg.CheckDuplicates && v.checker != nil {
			device := row.Value(v.cfg.DeviceNameField)
			lat := row.Value(v.cfg.LatitudeField)
			lon := row.Value(v.cfg.LongitudeField)

			exists, err := v.checker.ExistsByDeviceAndLocation(ctx, device, lat, lon)
			if err != nil {
				if v.logger != nil {
					v.logger.Error("Duplicate lookup failed",
						zap.Int("row", rowNo), zap.String("device", device), zap.Error(err))
				}
				lookupErrs = append(lookupErrs, fmt.Errorf("duplicate check failed for row %d: %w", rowNo, err))
				continue
			}
			if exists {
				result.Errors = append(result.Errors, RowError{
					Row:     rowNo,
					Field:   v.cfg.DeviceNameField,
					Kind:    ErrKindDuplicate,
					Message: fmt.Sprintf("Row %d is a duplicate entry: Device %q at (%s, %s) already exists.", rowNo, device, lat, lon),
				})
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, errors.Join(lookupErrs...)
}

// checkDate emits the format error or the future-date error, never both.
func (v *RecordValidator) checkDate(rowNo int, date string, today time.Time) []RowError {
	formatErr := []RowError{{
		Row:     rowNo,
		Field:   v.cfg.DateField,
		Kind:    ErrKindInvalidDate,
		Message: fmt.Sprintf("Row %d has an invalid date format: %q.", rowNo, date),
	}}

	if !datePattern.MatchString(date) {
		return formatErr
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		// Matches the pattern but is not a calendar date, e.g. 2023-13-45.
		return formatErr
	}
	if v.cfg.CheckFutureDate && parsed.After(today) {
		return []RowError{{
			Row:     rowNo,
			Field:   v.cfg.DateField,
			Kind:    ErrKindFutureDate,
			Message: fmt.Sprintf("Row %d has a future date: %q.", rowNo, date),
		}}
	}
	return nil
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
