package validation_test

import (
	"testing"

	"go-forms-gateway/internal/domain"
	"go-forms-gateway/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDutchAliases(t *testing.T) {
	fields := validation.Normalize(map[string]string{
		"naam":     "Jan",
		"email":    "jan@example.com",
		"telefoon": "+31 6 12345678",
		"bericht":  "Ik zoek twee chefs voor een evenement.",
	})
	assert.Equal(t, "Jan", fields.Name)
	assert.Equal(t, "jan@example.com", fields.Email)
	assert.Equal(t, "+31 6 12345678", fields.Phone)
	assert.Equal(t, "Ik zoek twee chefs voor een evenement.", fields.Message)
}

func TestNormalizeEnglishAliases(t *testing.T) {
	fields := validation.Normalize(map[string]string{
		"name":    "Jan",
		"email":   "jan@example.com",
		"phone":   "0612345678",
		"message": "Ik zoek twee chefs voor een evenement.",
	})
	assert.Equal(t, "Jan", fields.Name)
	assert.Equal(t, "0612345678", fields.Phone)
}

func TestCheckValidSubmission(t *testing.T) {
	cv := validation.NewContactValidator()
	result := cv.Check(domain.ContactFields{
		Name:    "Jan",
		Email:   "jan@example.com",
		Message: "Ik zoek twee chefs voor een evenement.",
	})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestCheckCollectsAllErrors(t *testing.T) {
	cv := validation.NewContactValidator()
	result := cv.Check(domain.ContactFields{
		Name:    "J",
		Email:   "not-an-email",
		Message: "hi",
	})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, []string{
		"Naam moet minimaal 2 karakters bevatten",
		"Voer een geldig e-mailadres in",
		"Bericht moet minimaal 10 karakters bevatten",
	}, result.Errors)
}

func TestCheckNameFlaggedIndependently(t *testing.T) {
	cv := validation.NewContactValidator()
	result := cv.Check(domain.ContactFields{
		Name:    "J",
		Email:   "jan@example.com",
		Message: "Een bericht dat lang genoeg is.",
	})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Naam moet minimaal 2 karakters bevatten"}, result.Errors)
}

func TestCheckMissingEmail(t *testing.T) {
	cv := validation.NewContactValidator()
	result := cv.Check(domain.ContactFields{
		Name:    "Jan",
		Message: "Een bericht dat lang genoeg is.",
	})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Voer een geldig e-mailadres in")
}

func TestCheckPhoneOptional(t *testing.T) {
	cv := validation.NewContactValidator()

	t.Run("absent phone is not an error", func(t *testing.T) {
		result := cv.Check(domain.ContactFields{
			Name:    "Jan",
			Email:   "jan@example.com",
			Message: "Een bericht dat lang genoeg is.",
		})
		assert.True(t, result.Valid)
	})

	t.Run("valid shapes pass", func(t *testing.T) {
		for _, phone := range []string{"+31 6 12345678", "(020) 123-4567 89", "0612345678"} {
			result := cv.Check(domain.ContactFields{
				Name:    "Jan",
				Email:   "jan@example.com",
				Phone:   phone,
				Message: "Een bericht dat lang genoeg is.",
			})
			assert.True(t, result.Valid, "phone %q", phone)
		}
	})

	t.Run("invalid shapes fail", func(t *testing.T) {
		for _, phone := range []string{"abc", "12345", "+31#612345678"} {
			result := cv.Check(domain.ContactFields{
				Name:    "Jan",
				Email:   "jan@example.com",
				Phone:   phone,
				Message: "Een bericht dat lang genoeg is.",
			})
			assert.False(t, result.Valid, "phone %q", phone)
			assert.Contains(t, result.Errors, "Voer een geldig telefoonnummer in")
		}
	})
}
