package validation

import (
	"go-forms-gateway/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Field aliases: the Dutch site forms post naam/telefoon/bericht while the
// English form layouts post name/phone/message. Both schemes resolve to the
// canonical domain.ContactFields here, so the rules only ever see one shape.
var fieldAliases = map[string][]string{
	"Name":    {"naam", "name"},
	"Email":   {"email"},
	"Phone":   {"telefoon", "phone"},
	"Message": {"bericht", "message"},
}

// fieldMessages maps canonical field names to user-facing Dutch messages.
// The same message covers a missing field and a field that fails its rule.
var fieldMessages = map[string]string{
	"Name":    "Naam moet minimaal 2 karakters bevatten",
	"Email":   "Voer een geldig e-mailadres in",
	"Phone":   "Voer een geldig telefoonnummer in",
	"Message": "Bericht moet minimaal 10 karakters bevatten",
}

// Normalize maps incoming form fields onto the canonical schema. The first
// non-empty alias wins; unknown keys are ignored (they are still relayed,
// just not validated field-by-field).
func Normalize(fields map[string]string) domain.ContactFields {
	pick := func(canonical string) string {
		for _, alias := range fieldAliases[canonical] {
			if v := fields[alias]; v != "" {
				return v
			}
		}
		return ""
	}
	return domain.ContactFields{
		Name:    pick("Name"),
		Email:   pick("Email"),
		Phone:   pick("Phone"),
		Message: pick("Message"),
	}
}

// ContactValidator checks the canonical contact fields. All rules are
// evaluated; the caller receives the full list of violations at once.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator creates a validator instance with the custom rules
// registered.
func NewContactValidator() *ContactValidator {
	v := validator.New()
	RegisterValidators(v)
	return &ContactValidator{validate: v}
}

// Check validates the fields and returns every violated rule as a
// user-facing message, in field order.
func (cv *ContactValidator) Check(fields domain.ContactFields) domain.ValidationResult {
	err := cv.validate.Struct(fields)
	if err == nil {
		return domain.ValidationResult{Valid: true}
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ValidationResult{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if msg, ok := fieldMessages[e.Field()]; ok {
			messages = append(messages, msg)
		} else {
			messages = append(messages, e.Field()+": "+e.Tag())
		}
	}
	return domain.ValidationResult{Errors: messages}
}
