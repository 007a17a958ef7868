// Package notify delivers alert and status messages to a Discord-compatible
// webhook, with a bounded number of attempts and a fixed delay between them.
//
// Delivery failure is expected to be non-fatal to callers: monitoring runs
// log the failure and continue, so a flaky webhook never wedges a check.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/provost-sh/provost/internal/util/retry"
)

// Severity classifies a message and drives its embed color.
type Severity int

const (
	// SeverityInfo is a routine status message (green).
	SeverityInfo Severity = iota
	// SeverityWarn is a degraded-but-working condition (yellow).
	SeverityWarn
	// SeverityCritical is an actionable alert (red).
	SeverityCritical
)

// Discord embed colors as decimal integers.
const (
	colorGreen  = 3066993
	colorYellow = 15105570
	colorRed    = 15158332
)

// Color returns the decimal embed color for the severity.
func (s Severity) Color() int {
	switch s {
	case SeverityWarn:
		return colorYellow
	case SeverityCritical:
		return colorRed
	default:
		return colorGreen
	}
}

// String returns the severity name used in logs and the CLI flag.
func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// ParseSeverity parses a severity name. Unknown names are an error.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warn":
		return SeverityWarn, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q (want info, warn, or critical)", s)
	}
}

// Notifier posts messages to a webhook endpoint.
type Notifier struct {
	webhookURL  string
	username    string
	version     string
	maxAttempts int
	retryDelay  time.Duration
	httpClient  *http.Client
	hostname    func() (string, error)
	now         func() time.Time
	logf        func(format string, v ...any)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithMaxAttempts sets the total delivery attempts per message.
func WithMaxAttempts(n int) Option {
	return func(c *Notifier) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between delivery attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Notifier) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithUsername sets the webhook display username.
func WithUsername(name string) Option {
	return func(c *Notifier) {
		c.username = name
	}
}

// WithVersion sets the tool version stamped into the message footer.
func WithVersion(v string) Option {
	return func(c *Notifier) {
		c.version = v
	}
}

// WithLogf overrides the per-attempt log function.
func WithLogf(logf func(format string, v ...any)) Option {
	return func(c *Notifier) {
		c.logf = logf
	}
}

// New creates a Notifier for the given webhook URL.
func New(webhookURL string, opts ...Option) *Notifier {
	n := &Notifier{
		webhookURL:  webhookURL,
		username:    "provost",
		version:     "dev",
		maxAttempts: 3,
		retryDelay:  5 * time.Second,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		hostname: os.Hostname,
		now:      time.Now,
		logf:     log.Printf,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// payload is the webhook wire format: a single embed with title,
// description, color, and a hostname/timestamp/version footer.
type payload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Footer      footer `json:"footer"`
}

type footer struct {
	Text string `json:"text"`
}

// Send delivers one message. It validates the endpoint before the first
// attempt: a missing or malformed webhook URL is a configuration error and
// produces zero network attempts. Transient failures (transport errors or
// any status other than 204) are retried up to the attempt bound, with the
// fixed delay between attempts. The returned error carries the last
// observed status.
func (c *Notifier) Send(ctx context.Context, title, body string, severity Severity) error {
	if err := c.validateEndpoint(); err != nil {
		return fmt.Errorf("webhook not configured: %w", err)
	}

	data, err := json.Marshal(c.buildPayload(title, body, severity))
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	attempt := 0
	err = retry.Do(ctx, func() error {
		attempt++
		if err := c.post(ctx, data); err != nil {
			if attempt < c.maxAttempts {
				c.logf("notify: attempt %d/%d failed (%v), retrying in %v", attempt, c.maxAttempts, err, c.retryDelay)
			}
			return err
		}
		c.logf("notify: delivered %q (severity=%s, attempt %d/%d)", title, severity, attempt, c.maxAttempts)
		return nil
	}, retry.WithMaxAttempts(c.maxAttempts), retry.WithFixedDelay(c.retryDelay))

	if err != nil {
		c.logf("notify: giving up on %q after %d attempts: %v", title, attempt, err)
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	return nil
}

// validateEndpoint rejects absent or malformed webhook URLs before any
// network traffic happens.
func (c *Notifier) validateEndpoint() error {
	if c.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}
	u, err := url.Parse(c.webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid webhook URL %q: expected an absolute http(s) URL", c.webhookURL)
	}
	return nil
}

func (c *Notifier) buildPayload(title, body string, severity Severity) payload {
	host, err := c.hostname()
	if err != nil {
		host = "unknown"
	}

	return payload{
		Username: c.username,
		Embeds: []embed{{
			Title:       title,
			Description: body,
			Color:       severity.Color(),
			Footer: footer{
				Text: fmt.Sprintf("%s • %s • provost %s", host, c.now().UTC().Format(time.RFC3339), c.version),
			},
		}},
	}
}

// post performs a single delivery attempt. Anything other than HTTP 204
// counts as a failed attempt.
func (c *Notifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
