// Package infer turns a cleaned page into the IR document by calling the
// Anthropic Messages API. The model response is validated before it is
// accepted, validation violations are fed back to the model for another
// attempt while it is still cheap to do so.
package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"wpc/config"
	"wpc/ir"
)

const anthropicVersion = "2023-06-01"

// Client calls the Anthropic Messages API.
type Client struct {
	log        *zap.Logger
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	maxTokens  int
	attempts   int
}

func NewClient(cfg *config.InferenceConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		log:        log.Named("infer"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     string(cfg.APIKey),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		attempts:   cfg.Attempts,
	}
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Document asks the model for the IR of a single page. It returns the decoded
// document along with the raw model payload for debug reporting. Transient
// transport failures and validation failures are retried up to the configured
// number of attempts, transport retries use exponential backoff.
func (c *Client) Document(ctx context.Context, title string, cleanHTML []byte) (*ir.Document, []byte, error) {
	if c.apiKey == "" {
		return nil, nil, errors.New("inference api key is not set")
	}

	messages := []apiMessage{
		{Role: "user", Content: BuildPagePrompt(title, cleanHTML)},
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, backoff(attempt-1)); err != nil {
				return nil, nil, err
			}
		}

		payload, err := c.complete(ctx, messages)
		if err != nil {
			if !IsRetryable(err) {
				return nil, nil, err
			}
			c.log.Warn("Transient inference failure, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
			lastErr = err
			continue
		}

		doc, err := ParsePayload(payload)
		if err == nil {
			c.log.Debug("Inference succeeded", zap.Int("attempt", attempt+1), zap.Int("sections", len(doc.Sections)))
			return doc, payload, nil
		}

		c.log.Warn("Inference payload rejected, asking model to fix it", zap.Int("attempt", attempt+1), zap.Error(err))
		lastErr = fmt.Errorf("inference payload rejected: %w", err)

		// feed violations back verbatim, they are addressed by path
		messages = append(messages,
			apiMessage{Role: "assistant", Content: string(payload)},
			apiMessage{Role: "user", Content: BuildFixPrompt(err)},
		)
	}
	return nil, nil, fmt.Errorf("inference failed after %d attempts: %w", c.attempts, lastErr)
}

// complete performs a single Messages API round trip and returns the text of
// the first content block.
func (c *Client) complete(ctx context.Context, messages []apiMessage) ([]byte, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages:  messages,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// transport errors are worth another attempt unless context is done
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference api status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("inference api error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return nil, errors.New("empty response from inference api")
	}
	return []byte(apiResp.Content[0].Text), nil
}

// ParsePayload decodes a model payload (or a pre-computed IR file) into a
// validated document. Markdown code fences around the JSON are tolerated.
func ParsePayload(payload []byte) (*ir.Document, error) {
	text := stripCodeBlock(string(payload))

	doc := &ir.Document{}
	if err := json.Unmarshal([]byte(text), doc); err != nil {
		return nil, fmt.Errorf("parse ir json: %w (raw: %s)", err, truncate(text, 200))
	}
	if err := ir.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("retryable error: %s", truncate(e.Message, 200))
	}
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// backoffUnit is scaled down in tests.
var backoffUnit = time.Second

// backoff returns a duration for attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * backoffUnit
	if base > 30*backoffUnit {
		base = 30 * backoffUnit
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
