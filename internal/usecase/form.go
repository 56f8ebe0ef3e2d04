package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-forms-gateway/internal/domain"
	"go-forms-gateway/pkg/logger"
	"go-forms-gateway/pkg/ratelimit"
	"go-forms-gateway/pkg/relay"
	"go-forms-gateway/pkg/sanitize"
	"go-forms-gateway/pkg/security"
	"go-forms-gateway/pkg/validation"

	"github.com/google/uuid"
)

// User-facing messages. The site is Dutch; the calling UI renders these
// strings directly.
const (
	msgThrottled  = "Te veel aanvragen. Wacht even en probeer het opnieuw."
	msgServerBusy = "Te veel aanvragen. Probeer het later opnieuw."
	msgTimeout    = "De aanvraag duurde te lang. Controleer je internetverbinding en probeer het opnieuw."
	msgConnection = "Kan geen verbinding maken met de server. Controleer je internetverbinding en probeer het opnieuw."
	msgBadRequest = "Er is een probleem met de formuliergegevens. Controleer of alle velden correct zijn ingevuld."
	msgTooLarge   = "De aanvraag is te groot. Probeer het opnieuw met minder gegevens."

	defaultSuccess      = "Bedankt! We nemen zo snel mogelijk contact met je op."
	defaultSuccessFiles = "Bedankt voor je aanmelding! We nemen zo snel mogelijk contact met je op."
)

// honeypot field stripped from incoming forms; the relay client appends its
// own "not a bot" value
const honeypotField = "botcheck"

// RelaySubmitter is the outbound side of the pipeline, satisfied by
// *relay.Client and mocked in tests.
type RelaySubmitter interface {
	SubmitJSON(ctx context.Context, fields map[string]string, subject string) relay.Result
	SubmitMultipart(ctx context.Context, fields map[string]string, files []relay.FilePart, subject string) relay.Result
}

type formUsecase struct {
	validator     *validation.ContactValidator
	files         *security.FileValidator
	limits        *ratelimit.Registry
	relay         RelaySubmitter
	repo          domain.SubmissionRepository // optional, nil disables auditing
	fallbackPhone string
}

// NewFormUsecase creates the submission pipeline. repo may be nil.
func NewFormUsecase(
	validator *validation.ContactValidator,
	files *security.FileValidator,
	limits *ratelimit.Registry,
	relaySubmitter RelaySubmitter,
	repo domain.SubmissionRepository,
	fallbackPhone string,
) domain.FormUsecase {
	return &formUsecase{
		validator:     validator,
		files:         files,
		limits:        limits,
		relay:         relaySubmitter,
		repo:          repo,
		fallbackPhone: fallbackPhone,
	}
}

// Submit validates and relays a text-only submission as a JSON payload.
func (uc *formUsecase) Submit(ctx context.Context, clientKey string, fields map[string]string, opts domain.SubmitOptions) (result domain.SubmissionResult) {
	defer uc.recoverInto(&result)

	clean := uc.sanitizeFields(fields)
	canonical := validation.Normalize(clean)

	if vr := uc.validator.Check(canonical); !vr.Valid {
		uc.record(ctx, "contact", clientKey, canonical, domain.OutcomeValidationFailed, strings.Join(vr.Errors, "; "))
		return failure(strings.Join(vr.Errors, "\n"))
	}

	if !uc.limits.Get(clientKey).Allow() {
		uc.record(ctx, "contact", clientKey, canonical, domain.OutcomeThrottled, "")
		return failure(msgThrottled)
	}

	res := uc.relay.SubmitJSON(ctx, clean, sanitize.Clean(opts.Subject))
	return uc.interpret(ctx, "contact", clientKey, canonical, res, opts, false)
}

// SubmitWithFiles validates text fields plus attachments and relays them as
// one multipart submission. The first file violation aborts the attempt.
func (uc *formUsecase) SubmitWithFiles(ctx context.Context, clientKey string, fields map[string]string, files []domain.FileRef, opts domain.SubmitOptions) (result domain.SubmissionResult) {
	defer uc.recoverInto(&result)

	clean := uc.sanitizeFields(fields)
	canonical := validation.Normalize(clean)

	if vr := uc.validator.Check(canonical); !vr.Valid {
		uc.record(ctx, "application", clientKey, canonical, domain.OutcomeValidationFailed, strings.Join(vr.Errors, "; "))
		return failure(strings.Join(vr.Errors, "\n"))
	}

	for _, f := range files {
		if fr := uc.files.ValidateFile(f.Size, f.ContentType); !fr.Valid {
			uc.record(ctx, "application", clientKey, canonical, domain.OutcomeFileRejected, fr.Error)
			return failure(fr.Error)
		}
	}

	if !uc.limits.Get(clientKey).Allow() {
		uc.record(ctx, "application", clientKey, canonical, domain.OutcomeThrottled, "")
		return failure(msgThrottled)
	}

	parts := make([]relay.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, relay.FilePart{
			FieldName:   "cv",
			FileName:    f.Name,
			ContentType: f.ContentType,
			Data:        f.Data,
		})
	}

	res := uc.relay.SubmitMultipart(ctx, clean, parts, sanitize.Clean(opts.Subject))
	return uc.interpret(ctx, "application", clientKey, canonical, res, opts, true)
}

// sanitizeFields cleans every text value and drops the honeypot key.
func (uc *formUsecase) sanitizeFields(fields map[string]string) map[string]string {
	clean := sanitize.CleanAll(fields)
	delete(clean, honeypotField)
	return clean
}

// interpret converts a classified relay result into the uniform submission
// result and records the attempt.
func (uc *formUsecase) interpret(ctx context.Context, form, clientKey string, canonical domain.ContactFields, res relay.Result, opts domain.SubmitOptions, hasFiles bool) domain.SubmissionResult {
	switch res.Outcome {
	case relay.OutcomeDelivered:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayed, "")
		msg := opts.SuccessMessage
		if msg == "" {
			if hasFiles {
				msg = defaultSuccessFiles
			} else {
				msg = defaultSuccess
			}
		}
		return domain.SubmissionResult{Success: true, Message: msg}

	case relay.OutcomeRejected:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, res.Message)
		if res.Message != "" {
			return failure(res.Message)
		}
		return failure(uc.genericError())

	case relay.OutcomeRateLimited:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, "relay rate limited")
		return failure(msgServerBusy)

	case relay.OutcomePayloadTooLarge:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, "payload too large")
		if hasFiles {
			return failure(fmt.Sprintf("Bestand is te groot. Maximale grootte is %dMB.", uc.files.MaxSize()/(1024*1024)))
		}
		return failure(msgTooLarge)

	case relay.OutcomeBadRequest:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, "relay rejected request")
		return failure(msgBadRequest)

	case relay.OutcomeServerError:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, fmt.Sprintf("relay status %d", res.Status))
		return failure(fmt.Sprintf("Er is een fout opgetreden (%d). Probeer het later opnieuw.", res.Status))

	case relay.OutcomeTimeout:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, "timeout")
		return failure(msgTimeout)

	case relay.OutcomeConnection, relay.OutcomeUnavailable:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, "connection failed")
		return failure(msgConnection)

	default:
		uc.record(ctx, form, clientKey, canonical, domain.OutcomeRelayFailed, "unclassified failure")
		return failure(uc.genericError())
	}
}

// genericError is the catch-all message; it always offers the phone number
// as a manual escape hatch in case the network path is fully unavailable.
func (uc *formUsecase) genericError() string {
	return fmt.Sprintf("Er is een onverwachte fout opgetreden. Probeer het later opnieuw of neem contact op via telefoon: %s", uc.fallbackPhone)
}

// recoverInto enforces the contract that no failure mode escapes the public
// entry points as a panic.
func (uc *formUsecase) recoverInto(result *domain.SubmissionResult) {
	if r := recover(); r != nil {
		logger.Log.Error("form submission panic", "panic", r)
		*result = failure(uc.genericError())
	}
}

// record writes the audit-log row. Auditing never influences the outcome; a
// failed write is only logged.
func (uc *formUsecase) record(ctx context.Context, form, clientKey string, canonical domain.ContactFields, outcome, detail string) {
	if uc.repo == nil {
		return
	}
	rec := &domain.SubmissionRecord{
		ID:        uuid.NewString(),
		Form:      form,
		Name:      canonical.Name,
		Email:     canonical.Email,
		Outcome:   outcome,
		Detail:    detail,
		ClientIP:  clientKey,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Record(ctx, rec); err != nil {
		logger.Log.Error("failed to record submission", "error", err, "outcome", outcome)
	}
}

func failure(msg string) domain.SubmissionResult {
	return domain.SubmissionResult{Success: false, Error: msg}
}
