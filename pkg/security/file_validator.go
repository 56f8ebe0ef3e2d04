package security

import "fmt"

// DefaultMaxFileSize matches the relay's free-tier attachment limit.
const DefaultMaxFileSize = 5 * 1024 * 1024

// FileValidationResult contains the result of validating one attachment.
type FileValidationResult struct {
	Valid bool   // Whether the file passed all checks
	Error string // User-facing message if validation failed
}

// Allowed declared content types: PDF plus both legacy and modern Word.
var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// FileValidator enforces the attachment constraints: a maximum byte size
// and a declared content-type allow-list. The file name and extension play
// no part; the declared type governs.
type FileValidator struct {
	maxSize int64
}

// NewFileValidator creates a file validator with the given byte limit.
// Non-positive limits fall back to DefaultMaxFileSize.
func NewFileValidator(maxSize int64) *FileValidator {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &FileValidator{maxSize: maxSize}
}

// MaxSize returns the configured byte limit.
func (fv *FileValidator) MaxSize() int64 {
	return fv.maxSize
}

// ValidateFile checks one attachment. A file of exactly the limit passes;
// one byte more is rejected.
func (fv *FileValidator) ValidateFile(size int64, contentType string) FileValidationResult {
	if size > fv.maxSize {
		return FileValidationResult{
			Error: fmt.Sprintf("Bestand is te groot. Maximale grootte is %dMB", fv.maxSize/(1024*1024)),
		}
	}
	if !allowedContentTypes[contentType] {
		return FileValidationResult{
			Error: "Alleen PDF en Word documenten zijn toegestaan",
		}
	}
	return FileValidationResult{Valid: true}
}
