package hosting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeImageHostUpload(t *testing.T) {
	var gotKey, gotSource, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotKey = r.FormValue("key")
		gotSource = r.FormValue("source")
		gotFormat = r.FormValue("format")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status_code": 200,
			"image":       map[string]string{"url": "https://iili.io/abc.png"},
		})
	}))
	defer srv.Close()

	host := NewFreeImageHost("api-key")
	host.endpoint = srv.URL

	url, err := host.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, "https://iili.io/abc.png", url)
	assert.Equal(t, "api-key", gotKey)
	assert.Equal(t, "aGVsbG8=", gotSource, "data-URI prefix must be stripped")
	assert.Equal(t, "json", gotFormat)
}

func TestFreeImageHostUploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "api error payload",
			status:  http.StatusBadRequest,
			body:    `{"status_code": 400, "error": {"message": "Invalid API key"}}`,
			message: "Invalid API key",
		},
		{
			name:    "http failure without payload",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			message: "status 500",
		},
		{
			name:    "ok status but missing url",
			status:  http.StatusOK,
			body:    `{"status_code": 200, "image": {}}`,
			message: "missing image url",
		},
		{
			name:    "unparseable body",
			status:  http.StatusOK,
			body:    `<html>gateway error</html>`,
			message: "parse upload response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			host := NewFreeImageHost("api-key")
			host.endpoint = srv.URL

			_, err := host.Upload(context.Background(), "aGVsbG8=")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecodeImage(t *testing.T) {
	data, err := decodeImage("aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	data, err = decodeImage("data:image/png;base64,aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	// unpadded input still decodes
	data, err = decodeImage("aGVsbG8")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = decodeImage("!!! not base64 !!!")
	assert.Error(t, err)
}
