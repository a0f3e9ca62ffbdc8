package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// NoReplyPlaceholder is substituted when the upstream response parses as
// JSON but carries no usable reply field.
const NoReplyPlaceholder = "(no reply from model)"

// ErrUpstreamTimeout marks a chat call that exceeded the client timeout.
var ErrUpstreamTimeout = errors.New("inference service timed out")

// UpstreamError is returned when the inference service responds with a body
// that is not valid JSON. The raw payload is preserved for diagnostics.
type UpstreamError struct {
	Raw string
}

func (e *UpstreamError) Error() string {
	return "inference service returned non-JSON response"
}

// Client calls the external inference service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs an inference service client with a bounded wait:
// a chat call never blocks past the configured timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat forwards one chat turn to the inference service and returns its
// reply. The response body is read as text first and only then parsed, so
// a non-JSON payload can be reported with the raw body attached.
func (c *Client) Chat(ctx context.Context, message, sessionID string) (string, error) {
	payload, err := json.Marshal(chatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("inference call timed out", zap.String("session_id", sessionID))
			return "", fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("failed to reach inference service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read inference response: %w", err)
	}
	c.logger.Debug("inference raw response", zap.String("body", string(raw)))

	if !json.Valid(raw) {
		c.logger.Error("inference service did not return JSON", zap.String("raw", string(raw)))
		return "", &UpstreamError{Raw: string(raw)}
	}

	// The body is JSON but need not be an object; anything without a
	// usable reply field gets the placeholder rather than an error.
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Reply == "" {
		return NoReplyPlaceholder, nil
	}
	return parsed.Reply, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
