package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const freeImageUploadEndpoint = "https://freeimage.host/api/1/upload"

// FreeImageHost uploads images to the freeimage.host API.
type FreeImageHost struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var _ ImageHost = (*FreeImageHost)(nil)

// NewFreeImageHost creates a freeimage.host client.
func NewFreeImageHost(apiKey string) *FreeImageHost {
	return &FreeImageHost{
		apiKey:   apiKey,
		endpoint: freeImageUploadEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type freeImageResponse struct {
	StatusCode int `json:"status_code"`
	Image      struct {
		URL string `json:"url"`
	} `json:"image"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the base64 payload as a multipart form and returns the
// hosted image URL.
func (h *FreeImageHost) Upload(ctx context.Context, imageBase64 string) (string, error) {
	var body strings.Builder
	form := multipart.NewWriter(&body)
	if err := form.WriteField("key", h.apiKey); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.WriteField("source", stripDataURI(imageBase64)); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.WriteField("format", "json"); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	var parsed freeImageResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("parse upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || parsed.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("upload rejected: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("upload rejected: status %d", resp.StatusCode)
	}
	if parsed.Image.URL == "" {
		return "", fmt.Errorf("upload response missing image url")
	}
	return parsed.Image.URL, nil
}
