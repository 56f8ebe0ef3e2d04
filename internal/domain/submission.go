package domain

import (
	"context"
	"time"
)

// ContactFields is the canonical schema every incoming form resolves to.
// Incoming field names (Dutch or English) are normalized into this struct
// before validation, so the rules only ever run against one shape.
type ContactFields struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"omitempty,loose_phone"`
	Message string `validate:"required,min=10"`
}

// FileRef is an uploaded attachment held in memory prior to relaying.
// ContentType is the declared MIME type from the multipart part header.
type FileRef struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// SubmitOptions carries per-form overrides for a submission.
type SubmitOptions struct {
	Subject        string
	SuccessMessage string
}

// SubmissionResult is the only shape ever returned to a caller. Exactly one
// of Message/Error is meaningful depending on Success.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidationResult collects every violated field rule at once; a submission
// is never partially valid.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// SubmissionRecord is the audit-log row written for every submission attempt,
// whether it was relayed, rejected locally, or failed in transit.
type SubmissionRecord struct {
	ID        string
	Form      string
	Name      string
	Email     string
	Outcome   string
	Detail    string
	ClientIP  string
	CreatedAt time.Time
}

// Submission attempt outcomes recorded in the audit log.
const (
	OutcomeRelayed          = "relayed"
	OutcomeValidationFailed = "validation_failed"
	OutcomeFileRejected     = "file_rejected"
	OutcomeThrottled        = "throttled"
	OutcomeRelayFailed      = "relay_failed"
)

// FormUsecase is the submission pipeline consumed by the HTTP handlers.
// Both entry points fold every failure mode into the SubmissionResult;
// they never return an error and never panic across this boundary.
type FormUsecase interface {
	// Submit validates and relays a text-only submission.
	Submit(ctx context.Context, clientKey string, fields map[string]string, opts SubmitOptions) SubmissionResult

	// SubmitWithFiles validates text fields plus attachments and relays
	// them as one multipart submission.
	SubmitWithFiles(ctx context.Context, clientKey string, fields map[string]string, files []FileRef, opts SubmitOptions) SubmissionResult
}

// SubmissionRepository persists submission attempts for auditing.
type SubmissionRepository interface {
	Record(ctx context.Context, rec *SubmissionRecord) error
}
