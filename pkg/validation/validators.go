package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Loose phone shape: optional leading +, then digits, spaces, hyphens
	// and parentheses only
	phoneShapeRegex = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)

	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("loose_phone", LoosePhone)
}

// LoosePhone validates a phone number loosely: the value may contain only
// digits, spaces, +, - and parentheses, and must hold at least ten digits
// once everything else is stripped. Empty values pass; combine with
// required to reject them.
func LoosePhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if !phoneShapeRegex.MatchString(val) {
		return false
	}
	return len(nonDigitRegex.ReplaceAllString(val, "")) >= 10
}
