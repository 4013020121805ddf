package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
}

func TestGenerateContentRequiresKeyAndModel(t *testing.T) {
	c := New(Options{})

	_, err := c.GenerateContent(context.Background(), Request{Model: "m"})
	require.Error(t, err)

	_, err = c.GenerateContent(context.Background(), Request{APIKey: "k"})
	require.Error(t, err)
}

func TestGenerateContentSuccess(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}

	var captured struct {
		path   string
		apiKey string
		body   generateContentRequest
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		resp := generateContentResponse{
			Candidates: []candidate{{
				Content: content{Parts: []part{
					{Text: "here is your render"},
					{InlineData: &blob{
						Data:     base64.StdEncoding.EncodeToString(imageBytes),
						MimeType: "image/png",
					}},
				}},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	res, err := c.GenerateContent(context.Background(), Request{
		APIKey:    "secret",
		Model:     "gemini-2.5-flash-image",
		Parts:     []Part{TextPart("a cozy bedroom"), ImagePart([]byte("src"), "image/jpeg")},
		WantImage: true,
		Image:     &ImageConfig{ImageSize: "2K", AspectRatio: "16:9"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", captured.path)
	assert.Equal(t, "secret", captured.apiKey)

	require.Len(t, captured.body.Contents, 1)
	parts := captured.body.Contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "a cozy bedroom", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("src")), parts[1].InlineData.Data)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MimeType)

	require.NotNil(t, captured.body.GenerationConfig)
	assert.Equal(t, []string{"IMAGE", "TEXT"}, captured.body.GenerationConfig.ResponseModalities)
	require.NotNil(t, captured.body.GenerationConfig.ImageConfig)
	assert.Equal(t, "2K", captured.body.GenerationConfig.ImageConfig.ImageSize)
	assert.Equal(t, "16:9", captured.body.GenerationConfig.ImageConfig.AspectRatio)

	assert.Equal(t, "here is your render", res.Text)
	require.Len(t, res.Images, 1)
	assert.Equal(t, imageBytes, res.Images[0].Data)
	assert.Equal(t, "image/png", res.Images[0].Mime)
}

func TestGenerateContentTextOnlyOmitsGenerationConfig(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Nil(t, body.GenerationConfig)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(generateContentResponse{
			Candidates: []candidate{{Content: content{Parts: []part{{Text: "analysis"}}}}},
		})
	})

	res, err := c.GenerateContent(context.Background(), Request{
		APIKey: "secret",
		Model:  "gemini-2.5-flash-image",
		Parts:  []Part{TextPart("describe the plan")},
	})
	require.NoError(t, err)
	assert.Equal(t, "analysis", res.Text)
	assert.Empty(t, res.Images)
}

func TestGenerateContentAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Quota exceeded for requests"}}`))
	})

	_, err := c.GenerateContent(context.Background(), Request{
		APIKey: "secret",
		Model:  "gemini-2.5-flash-image",
		Parts:  []Part{TextPart("hello")},
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Quota exceeded for requests", apiErr.Message)
}

func TestGenerateContentAPIErrorFallsBackToRawBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := c.GenerateContent(context.Background(), Request{
		APIKey: "secret",
		Model:  "m",
		Parts:  []Part{TextPart("hi")},
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestGenerateContentNoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	res, err := c.GenerateContent(context.Background(), Request{
		APIKey: "secret",
		Model:  "m",
		Parts:  []Part{TextPart("hi")},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.Empty(t, res.Images)
}
