package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// EngineRemote identifies the HTTP OCR service engine.
const EngineRemote = "remote"

const (
	// remoteTimeout bounds one OCR request; transformer-based services
	// can take a while on multi-page documents.
	remoteTimeout = 3 * time.Minute

	// remoteRateLimit caps requests per second against shared OCR
	// services.
	remoteRateLimit = 2.0
)

// Remote sends the PDF to an HTTP OCR service and returns the
// recognized text. The service URL comes from OCR_SERVER_URL and the
// optional API key from OCR_API_KEY.
type Remote struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	device     string
}

// RemoteOption configures a Remote engine.
type RemoteOption func(*Remote)

// WithBaseURL sets the service URL (for testing).
func WithBaseURL(url string) RemoteOption {
	return func(r *Remote) { r.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) RemoteOption {
	return func(r *Remote) { r.httpClient = hc }
}

// NewRemote creates the remote OCR engine with the given device hint.
func NewRemote(device string, opts ...RemoteOption) *Remote {
	r := &Remote{
		httpClient: &http.Client{Timeout: remoteTimeout},
		limiter:    rate.NewLimiter(rate.Limit(remoteRateLimit), 1),
		baseURL:    os.Getenv("OCR_SERVER_URL"),
		apiKey:     os.Getenv("OCR_API_KEY"),
		device:     device,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements Engine.
func (r *Remote) Name() string { return EngineRemote }

// Available reports whether a service URL is configured.
func (r *Remote) Available() bool {
	return r.baseURL != ""
}

// ocrResponse is the service's response payload.
type ocrResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Extract uploads the PDF and returns the service's recognized text.
func (r *Remote) Extract(path string, maxPages, dpi int) (string, error) {
	if r.baseURL == "" {
		return "", fmt.Errorf("ocr server url not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	if err := r.limiter.Wait(context.Background()); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.baseURL+"/ocr", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	q := req.URL.Query()
	q.Set("max_pages", strconv.Itoa(maxPages))
	q.Set("dpi", strconv.Itoa(dpi))
	if r.device != "" && r.device != "auto" {
		q.Set("device", r.device)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr service returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out ocrResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ocr service error: %s", out.Error)
	}
	return out.Text, nil
}
