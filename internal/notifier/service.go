package notifier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"larknotify/internal/card"
	"larknotify/internal/config"
)

const (
	userAgent             = "larknotify/0.1.0"
	defaultHTTPTimeout    = 10 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
)

// ErrNotConfigured is returned by Test when no webhook URL is configured.
var ErrNotConfigured = errors.New("notifier: webhook url not configured")

// Service delivers finished cards to the configured Lark webhook.
type Service interface {
	Send(ctx context.Context, c *card.Card) error
	Test(ctx context.Context) error
}

// Option customizes the webhook service.
type Option func(*webhookService)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *webhookService) {
		if client != nil {
			s.client = client
		}
	}
}

// WithRetryMaxAttempts overrides the delivery retry count (defaults to 3).
func WithRetryMaxAttempts(attempts int) Option {
	return func(s *webhookService) {
		s.retryMaxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(s *webhookService) {
		s.retryBaseDelay = baseDelay
		s.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(s *webhookService) {
		s.sleeper = sleeper
	}
}

// WithNow overrides the clock used for signing timestamps (useful for tests).
func WithNow(now func() time.Time) Option {
	return func(s *webhookService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a notification service backed by the configured webhook.
// When no webhook URL is configured, a noop implementation is returned.
func NewService(cfg *config.Config, logger *slog.Logger, opts ...Option) Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	url := ""
	secret := ""
	timeout := defaultHTTPTimeout
	if cfg != nil {
		url = strings.TrimSpace(cfg.Webhook.URL)
		secret = strings.TrimSpace(cfg.Webhook.Secret)
		if cfg.Webhook.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second
		}
	}
	if url == "" {
		return noopService{logger: logger}
	}

	svc := &webhookService{
		endpoint:         url,
		secret:           secret,
		client:           &http.Client{Timeout: timeout},
		logger:           logger,
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type webhookService struct {
	endpoint string
	secret   string
	client   *http.Client
	logger   *slog.Logger

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
	now              func() time.Time
}

// envelope is the wire format the custom-bot webhook expects. Timestamp and
// sign are present only when a signing secret is configured.
type envelope struct {
	Timestamp string          `json:"timestamp,omitempty"`
	Sign      string          `json:"sign,omitempty"`
	MsgType   string          `json:"msg_type"`
	Card      json.RawMessage `json:"card"`
}

type webhookResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("webhook returned http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// DeliveryError reports a webhook request the service accepted over HTTP but
// rejected at the application level (code != 0). Not retried.
type DeliveryError struct {
	Code int
	Msg  string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("webhook rejected card: code %d: %s", e.Code, e.Msg)
}

func (s *webhookService) Send(ctx context.Context, c *card.Card) error {
	if c == nil {
		return errors.New("notifier: nil card")
	}
	payload, err := c.JSON()
	if err != nil {
		return fmt.Errorf("serialize card: %w", err)
	}

	body, err := s.envelopeFor(payload)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	started := s.now()

	attempts := s.retryMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.sendOnce(ctx, body, requestID)
		if err == nil {
			s.logger.Info("card delivered",
				"request_id", requestID,
				"attempt", attempt,
				"latency", time.Since(started).Round(time.Millisecond))
			return nil
		}
		lastErr = err
		if attempt == attempts || !retryable(ctx, err) {
			break
		}
		s.logger.Warn("card delivery failed, retrying",
			"request_id", requestID,
			"attempt", attempt,
			"error", err)
		if sleepErr := s.sleep(ctx, s.backoffDelay(attempt)); sleepErr != nil {
			return sleepErr
		}
	}
	s.logger.Error("card delivery failed",
		"request_id", requestID,
		"error", lastErr)
	return lastErr
}

func (s *webhookService) Test(ctx context.Context) error {
	c, err := card.NewBuilder().
		Header("larknotify test", card.WithStatus("info")).
		Markdown("Notification channel test").
		Metadata("Sent At", s.now().UTC().Format(time.RFC3339)).
		Build()
	if err != nil {
		return err
	}
	return s.Send(ctx, c)
}

// envelopeFor wraps the card payload, signing when a secret is configured.
// The signature is an HMAC-SHA256 over an empty message keyed with
// "<timestamp>\n<secret>", base64-encoded.
func (s *webhookService) envelopeFor(payload []byte) ([]byte, error) {
	env := envelope{
		MsgType: "interactive",
		Card:    payload,
	}
	if s.secret != "" {
		timestamp := s.now().Unix()
		env.Timestamp = fmt.Sprintf("%d", timestamp)
		env.Sign = signature(s.secret, timestamp)
	}
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode webhook envelope: %w", err)
	}
	return body, nil
}

func signature(secret string, timestamp int64) string {
	key := fmt.Sprintf("%d\n%s", timestamp, secret)
	mac := hmac.New(sha256.New, []byte(key))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (s *webhookService) sendOnce(ctx context.Context, body []byte, requestID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("read webhook response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return &httpStatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed webhookResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Some deployments answer 200 with a non-JSON body; treat it as accepted.
		return nil
	}
	if parsed.Code != 0 {
		return &DeliveryError{Code: parsed.Code, Msg: strings.TrimSpace(parsed.Msg)}
	}
	return nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx != nil && ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			return true
		default:
			return false
		}
	}

	var deliveryErr *DeliveryError
	if errors.As(err, &deliveryErr) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func (s *webhookService) backoffDelay(attempt int) time.Duration {
	delay := s.retryBaseDelay
	if delay <= 0 {
		return 0
	}
	for i := 1; i < attempt; i++ {
		if s.retryMaxDelay > 0 && delay > s.retryMaxDelay/2 {
			return s.retryMaxDelay
		}
		delay *= 2
	}
	if s.retryMaxDelay > 0 && delay > s.retryMaxDelay {
		return s.retryMaxDelay
	}
	return delay
}

func (s *webhookService) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if s.sleeper != nil {
		s.sleeper(delay)
		if ctx != nil {
			return ctx.Err()
		}
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type noopService struct {
	logger *slog.Logger
}

func (n noopService) Send(context.Context, *card.Card) error {
	n.logger.Debug("notification skipped: webhook not configured")
	return nil
}

func (n noopService) Test(context.Context) error {
	return ErrNotConfigured
}
