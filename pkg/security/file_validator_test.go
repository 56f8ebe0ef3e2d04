package security_test

import (
	"testing"

	"go-forms-gateway/pkg/security"

	"github.com/stretchr/testify/assert"
)

const pdf = "application/pdf"

func TestFileExactlyAtLimitAccepted(t *testing.T) {
	fv := security.NewFileValidator(5 * 1024 * 1024)
	result := fv.ValidateFile(5*1024*1024, pdf)
	assert.True(t, result.Valid)
}

func TestFileOneByteOverLimitRejected(t *testing.T) {
	fv := security.NewFileValidator(5 * 1024 * 1024)
	result := fv.ValidateFile(5*1024*1024+1, pdf)
	assert.False(t, result.Valid)
	assert.Equal(t, "Bestand is te groot. Maximale grootte is 5MB", result.Error)
}

func TestFileContentTypeAllowList(t *testing.T) {
	fv := security.NewFileValidator(0) // default limit

	allowed := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, ct := range allowed {
		result := fv.ValidateFile(1024, ct)
		assert.True(t, result.Valid, "content type %q", ct)
	}

	rejected := []string{"image/png", "text/plain", "application/zip", ""}
	for _, ct := range rejected {
		result := fv.ValidateFile(1024, ct)
		assert.False(t, result.Valid, "content type %q", ct)
		assert.Equal(t, "Alleen PDF en Word documenten zijn toegestaan", result.Error)
	}
}

func TestFileNameIsIrrelevant(t *testing.T) {
	// the declared type governs: a PDF declared as such passes no matter
	// what the upload was called, and size is checked first
	fv := security.NewFileValidator(1024)
	assert.True(t, fv.ValidateFile(1024, pdf).Valid)
	assert.False(t, fv.ValidateFile(2048, pdf).Valid)
}

func TestConfiguredLimitInMessage(t *testing.T) {
	fv := security.NewFileValidator(10 * 1024 * 1024)
	result := fv.ValidateFile(11*1024*1024, pdf)
	assert.Equal(t, "Bestand is te groot. Maximale grootte is 10MB", result.Error)
}
