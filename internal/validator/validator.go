// Package validator holds the field rules shared by every command and query.
//
// A rule returns its message when the value breaks it and "" when the value is fine.
// All collects the outcomes of a request into a Result.
package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperror "storefront/internal/errors"
	"storefront/internal/messages"
)

// MinPasswordLength is the shortest password accepted on signup and update.
const MinPasswordLength = 8

var fields = validator.New()

// Result is the outcome of a validation run: either OK or an ordered list of messages.
type Result struct {
	errs []string
}

// OK reports whether every rule passed.
func (r Result) OK() bool { return len(r.errs) == 0 }

// Errors returns the violated rule messages in evaluation order.
func (r Result) Errors() []string { return r.errs }

// Err returns nil for an OK result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return apperror.NewValidationError(r.errs...)
}

// Fail builds a failed result from explicit messages.
func Fail(msgs ...string) Result {
	return All(msgs...)
}

// Pass is the OK result.
func Pass() Result { return Result{} }

// All runs every check and keeps the non-empty outcomes, in order.
func All(checks ...string) Result {
	var errs []string
	for _, c := range checks {
		if c != "" {
			errs = append(errs, c)
		}
	}
	return Result{errs: errs}
}

// Merge appends the messages of other results.
func (r Result) Merge(others ...Result) Result {
	errs := append([]string(nil), r.errs...)
	for _, o := range others {
		errs = append(errs, o.errs...)
	}
	return Result{errs: errs}
}

// Optional skips a check for a field the client left out of a partial update.
func Optional(present bool, check string) string {
	if !present {
		return ""
	}
	return check
}

// Deref reads an optional field, yielding the zero value when it was omitted.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ValidID returns a *ValidationError naming field when id is not a UUID.
func ValidID(id, field string) error {
	return All(UUID(id, messages.InvalidID(field))).Err()
}

// NotEmpty fails for a blank string.
func NotEmpty(value string, msg string) string {
	if strings.TrimSpace(value) == "" {
		return msg
	}
	return ""
}

// NotEmptySlice fails for a nil or empty slice.
func NotEmptySlice[T any](values []T, msg string) string {
	if len(values) == 0 {
		return msg
	}
	return ""
}

// PositiveNumber fails unless value > 0.
func PositiveNumber(value float64, msg string) string {
	if value > 0 {
		return ""
	}
	return msg
}

// PositiveDecimal fails unless value > 0.
func PositiveDecimal(value decimal.Decimal, msg string) string {
	if value.IsPositive() {
		return ""
	}
	return msg
}

// IntBetween fails unless lo <= value <= hi.
func IntBetween(value, lo, hi int, msg string) string {
	if value < lo || value > hi {
		return msg
	}
	return ""
}

// NonNegativeInt fails for value < 0.
func NonNegativeInt(value int, msg string) string {
	if value < 0 {
		return msg
	}
	return ""
}

// OneOf fails unless value is one of allowed.
func OneOf(value string, allowed []string, msg string) string {
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return msg
}

// MaxLength fails when value has more than n characters.
func MaxLength(value string, n int, msg string) string {
	if utf8.RuneCountInString(value) > n {
		return msg
	}
	return ""
}

// Email fails unless value looks like an e-mail address.
func Email(value string, msg string) string {
	if fields.Var(value, "required,email") != nil {
		return msg
	}
	return ""
}

// UUID fails unless value is a canonical UUID.
func UUID(value string, msg string) string {
	if fields.Var(value, "required,uuid") != nil {
		return msg
	}
	return ""
}

// Password fails unless value has MinPasswordLength characters including a letter,
// a digit and a special character.
func Password(value string, msg string) string {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return msg
	}

	var letter, digit, special bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !letter || !digit || !special {
		return msg
	}
	return ""
}

// Equals fails unless a == b.
func Equals(a, b string, msg string) string {
	if a != b {
		return msg
	}
	return ""
}
