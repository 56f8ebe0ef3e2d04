package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultTimeout is the hard cap on one relay call.
const DefaultTimeout = 30 * time.Second

// cap on the response body we are willing to read
const maxResponseBytes = 1 << 20

// Outcome classifies the result of one relay call.
type Outcome int

const (
	OutcomeDelivered       Outcome = iota // 2xx and relay reported success
	OutcomeRejected                       // 2xx but relay reported success=false
	OutcomeTimeout                        // deadline hit before a response arrived
	OutcomeConnection                     // DNS/connection level failure
	OutcomeRateLimited                    // HTTP 429
	OutcomePayloadTooLarge                // HTTP 413
	OutcomeBadRequest                     // HTTP 400
	OutcomeServerError                    // any other non-2xx status
	OutcomeUnavailable                    // circuit breaker open
)

// Result carries the classified outcome of a relay call plus whatever
// message the relay itself reported.
type Result struct {
	Outcome Outcome
	Status  int
	Message string
}

// FilePart is one binary attachment of a multipart submission.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// Config holds the relay endpoint contract: the access credential and the
// control fields appended to every submission.
type Config struct {
	Endpoint  string
	AccessKey string
	To        string
	FromName  string
	Redirect  string
	Timeout   time.Duration
}

// Client posts submissions to the external form-relay service. All failure
// modes come back as a classified Result; Submit methods never return an
// error and never panic.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// relayResponse is the documented part of the relay's JSON reply. Any
// additional fields are ignored.
type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewClient creates a relay client. The circuit breaker trips after five
// consecutive transport-level failures and probes again after 30 seconds.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "form-relay",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 5 },
	})
	return &Client{
		cfg:     cfg,
		http:    &http.Client{},
		breaker: cb,
	}
}

// controlFields returns the fields the relay contract requires on every
// submission. The botcheck honeypot is explicitly "not a bot".
func (c *Client) controlFields(subject string) map[string]string {
	return map[string]string{
		"access_key": c.cfg.AccessKey,
		"subject":    subject,
		"to":         c.cfg.To,
		"from_name":  c.cfg.FromName,
		"redirect":   c.cfg.Redirect,
	}
}

// SubmitJSON posts a text-only submission as a JSON body.
func (c *Client) SubmitJSON(ctx context.Context, fields map[string]string, subject string) Result {
	payload := make(map[string]interface{}, len(fields)+6)
	for k, v := range fields {
		payload[k] = v
	}
	for k, v := range c.controlFields(subject) {
		payload[k] = v
	}
	payload["botcheck"] = false

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Outcome: OutcomeBadRequest}
	}
	return c.do(ctx, bytes.NewReader(body), "application/json")
}

// SubmitMultipart posts fields plus attachments as one multipart form body.
func (c *Client) SubmitMultipart(ctx context.Context, fields map[string]string, files []FilePart, subject string) Result {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return Result{Outcome: OutcomeBadRequest}
		}
	}
	for k, v := range c.controlFields(subject) {
		if err := w.WriteField(k, v); err != nil {
			return Result{Outcome: OutcomeBadRequest}
		}
	}
	if err := w.WriteField("botcheck", "false"); err != nil {
		return Result{Outcome: OutcomeBadRequest}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return Result{Outcome: OutcomeBadRequest}
		}
		if _, err := part.Write(f.Data); err != nil {
			return Result{Outcome: OutcomeBadRequest}
		}
	}
	if err := w.Close(); err != nil {
		return Result{Outcome: OutcomeBadRequest}
	}

	return c.do(ctx, &buf, w.FormDataContentType())
}

type httpReply struct {
	status int
	body   []byte
}

// do performs the POST under the configured timeout and classifies the
// outcome. Transport failures and 5xx replies count against the breaker.
func (c *Client) do(ctx context.Context, body io.Reader, contentType string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, body)
	if err != nil {
		return Result{Outcome: OutcomeConnection}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	res, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		reply := httpReply{status: resp.StatusCode, body: b}
		if resp.StatusCode >= 500 {
			return reply, errors.New(http.StatusText(resp.StatusCode))
		}
		return reply, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Result{Outcome: OutcomeUnavailable}
		}
		if reply, ok := res.(httpReply); ok {
			return Result{Outcome: OutcomeServerError, Status: reply.status}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Outcome: OutcomeTimeout}
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return Result{Outcome: OutcomeTimeout}
		}
		return Result{Outcome: OutcomeConnection}
	}

	reply := res.(httpReply)
	switch {
	case reply.status == http.StatusTooManyRequests:
		return Result{Outcome: OutcomeRateLimited, Status: reply.status}
	case reply.status == http.StatusRequestEntityTooLarge:
		return Result{Outcome: OutcomePayloadTooLarge, Status: reply.status}
	case reply.status == http.StatusBadRequest:
		return Result{Outcome: OutcomeBadRequest, Status: reply.status}
	case reply.status < 200 || reply.status >= 300:
		return Result{Outcome: OutcomeServerError, Status: reply.status}
	}

	var parsed relayResponse
	_ = json.Unmarshal(reply.body, &parsed)
	if parsed.Success {
		return Result{Outcome: OutcomeDelivered, Status: reply.status, Message: parsed.Message}
	}
	return Result{Outcome: OutcomeRejected, Status: reply.status, Message: parsed.Message}
}
