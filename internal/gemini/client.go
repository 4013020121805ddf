// Package gemini is a thin client for the generateContent endpoint of the
// Google generative language API. The API key is supplied per call: the
// dispatcher resolves credentials for each generation and never caches
// them, so the client itself stays credential-free.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Options struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	log        *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 3 * time.Minute
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: httpClient,
		log:        log,
	}
}

// Part is one element of the request contents: either text or an inline
// image payload.
type Part struct {
	Text string
	Data []byte
	Mime string
}

func TextPart(text string) Part { return Part{Text: text} }

func ImagePart(data []byte, mime string) Part { return Part{Data: data, Mime: mime} }

// ImageConfig carries the premium-tier generation parameters.
type ImageConfig struct {
	ImageSize   string
	AspectRatio string
}

type Request struct {
	APIKey string
	Model  string
	Parts  []Part
	// WantImage asks the model for an image response modality.
	WantImage bool
	// Image is attached only when tier-specific parameters apply.
	Image *ImageConfig
}

// InlineImage is a decoded image part of the model response.
type InlineImage struct {
	Data []byte
	Mime string
}

type Result struct {
	Text   string
	Images []InlineImage
}

// APIError is a non-2xx upstream response, kept typed so the caller can
// map auth and rate-limit categories.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API %s: %s", e.Status, e.Message)
}

// GenerateContent posts the parts to the model and decodes the first
// candidate's response parts.
func (c *Client) GenerateContent(ctx context.Context, req Request) (*Result, error) {
	if req.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if req.Model == "" {
		return nil, errors.New("model is required")
	}

	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: wireParts(req.Parts)}},
	}
	if req.WantImage {
		payload.GenerationConfig = &generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		}
	}
	if req.Image != nil {
		if payload.GenerationConfig == nil {
			payload.GenerationConfig = &generationConfig{}
		}
		payload.GenerationConfig.ImageConfig = &imageConfig{
			ImageSize:   req.Image.ImageSize,
			AspectRatio: req.Image.AspectRatio,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", req.APIKey)

	c.log.Info("calling gemini", "model", req.Model, "parts", len(req.Parts))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post generateContent: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if httpResp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Message:    errorMessage(rawBody),
		}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return extractResult(decoded)
}

func wireParts(parts []Part) []part {
	out := make([]part, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			out = append(out, part{Text: p.Text})
			continue
		}
		out = append(out, part{InlineData: &blob{
			Data:     base64.StdEncoding.EncodeToString(p.Data),
			MimeType: p.Mime,
		}})
	}
	return out
}

func extractResult(resp generateContentResponse) (*Result, error) {
	if len(resp.Candidates) == 0 {
		return &Result{}, nil
	}

	var textBuilder strings.Builder
	var images []InlineImage

	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			textBuilder.WriteString(p.Text)
		}
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decode inline image: %w", err)
		}
		images = append(images, InlineImage{Data: data, Mime: p.InlineData.MimeType})
	}

	return &Result{Text: textBuilder.String(), Images: images}, nil
}

// errorMessage pulls the API error message out of the standard error
// envelope, falling back to the raw body.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return truncate(strings.TrimSpace(string(raw)), 512)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
