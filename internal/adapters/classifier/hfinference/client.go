// Package hfinference classifies text through a hosted inference endpoint
// that answers with {label, score} pairs
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"aidetector/internal/core/detection"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
)

const (
	baseURLDefault = "https://api-inference.huggingface.co"
	modelDefault   = "openai-community/roberta-base-openai-detector"
	defaultTimeout = 30 * time.Second
	defaultUA      = "aidetector"
)

// ErrNoAPIKey is returned by Classify when the client was built without a key
var ErrNoAPIKey = perr.New(perr.ErrorCodeUnknown, "Hugging Face API key not configured")

// Options configures the Client
type Options struct {
	BaseURL   string
	Model     string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
}

// Client is a detection.Classifier; one call per Classify, never retried
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// New fills defaults and returns a Client
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Model == "" {
		o.Model = modelDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	o.APIKey = strings.TrimSpace(o.APIKey)
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("hfinference"),
	}
}

// Model implements detection.Classifier
func (c *Client) Model() string { return c.opts.Model }

// HasKey reports whether an API key is configured
func (c *Client) HasKey() bool { return c.opts.APIKey != "" }

// Endpoint is the URL Classify posts to
func (c *Client) Endpoint() string { return c.opts.BaseURL + "/models/" + c.opts.Model }

// Classify implements detection.Classifier
func (c *Client) Classify(ctx context.Context, text string) ([]detection.Label, error) {
	if !c.HasKey() {
		return nil, ErrNoAPIKey
	}
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode inference request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "build inference request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, detection.Timeout(err)
		}
		return nil, detection.Unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.log.Debug().
		Str("model", c.opts.Model).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("latency", time.Since(start)).
		Msg("inference response")
	if err != nil {
		if isTimeout(err) {
			return nil, detection.Timeout(err)
		}
		return nil, detection.Unavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, detection.Unavailable(detection.NewUpstreamError(resp.StatusCode, raw))
	}
	return Flatten(raw)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
