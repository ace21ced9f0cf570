package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

const DateLayout = "2006-01-02"

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Employee codes are free-form business identifiers such as "EMP-0012".
var employeeCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,31}$`)

func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}

// IsPositive reports whether d is present and strictly greater than zero.
func IsPositive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

// IsCents reports whether d carries no more than two decimal places.
func IsCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// ValidatePeriod checks a from/to pair of YYYY-MM-DD strings and appends
// field errors to errs. The parsed dates are returned when both are valid.
func ValidatePeriod(from, to string, errs *ValidationErrors) (time.Time, time.Time) {
	start, okStart := IsValidDate(from)
	if !okStart {
		*errs = append(*errs, ValidationError{Field: "from", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, okEnd := IsValidDate(to)
	if !okEnd {
		*errs = append(*errs, ValidationError{Field: "to", Message: "must be a date in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		*errs = append(*errs, ValidationError{Field: "to", Message: "must not be before from"})
	}
	return start, end
}
