package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	classifyPath = "/api/email/classify"
	healthPath   = "/api/health"

	// healthTimeout bounds the startup probe so a dead API never blocks the UI
	healthTimeout = 5 * time.Second
)

// Client talks to the remote email classification API
type Client struct {
	BaseURL string
	Timeout time.Duration

	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new API client. A zero timeout means no client-side limit.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Classify submits an email and returns the API's classification
func (c *Client) Classify(ctx context.Context, req Request) (*Result, error) {
	body, contentType, err := encodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+classifyPath, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	c.logf("POST %s (%s)", classifyPath, describe(req))
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Op: "classify", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(data)}
		c.logf("classify failed: %v", apiErr)
		return nil, apiErr
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &NetworkError{Op: "decode response", Err: err}
	}
	c.logf("classify ok: %s (model=%s)", result.Classification, result.ModelUsed)
	return &result, nil
}

// Health queries the API status endpoint
func (c *Client) Health(ctx context.Context) (*Health, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Op: "health", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(data)}
	}

	var health Health
	if err := json.Unmarshal(data, &health); err != nil {
		return nil, &NetworkError{Op: "decode response", Err: err}
	}
	return &health, nil
}

// encodeRequest builds the multipart body: a "file" part carrying the
// file's own content type, or an "email_content" field
func encodeRequest(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if req.File != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(req.File.Name)))
		ct := req.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(req.File.Data); err != nil {
			return nil, "", err
		}
	} else {
		if err := w.WriteField("email_content", req.Text); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// extractDetail returns the "detail" field of an error body when it is a
// string. Validation errors carry a list there, which is not shown.
func extractDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

func describe(req Request) string {
	if req.File != nil {
		return fmt.Sprintf("file=%s, %d bytes", req.File.Name, len(req.File.Data))
	}
	return fmt.Sprintf("text, %d chars", len([]rune(req.Text)))
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
