package iostorage_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leafdex/leafdex/internal/iostorage"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/files", r.URL.Path)

			user, _, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "private-key", user)

			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "/leafdex/discoveries",
				r.FormValue("folder"))

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "geo_1_u1.jpg", header.Filename)

			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, []byte("imagebytes"), data)

			json.NewEncoder(w).Encode(map[string]string{
				"url": "https://cdn.example/leafdex/geo_1_u1.jpg",
			})
		}))
	defer srv.Close()

	store := iostorage.New(config.StorageConfig{
		URL:        srv.URL,
		PrivateKey: "private-key",
		TimeoutSec: 5,
	})

	url, err := store.Upload(
		context.Background(),
		[]byte("imagebytes"),
		"geo_1_u1.jpg",
		"/leafdex/discoveries",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/leafdex/geo_1_u1.jpg", url)
}

func TestUpload_Failures(t *testing.T) {
	tests := []struct {
		msg     string
		handler http.HandlerFunc
	}{
		{
			msg: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded",
					http.StatusInsufficientStorage)
			},
		},
		{
			msg: "empty url in response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{})
			},
		},
	}

	for _, v := range tests {
		srv := httptest.NewServer(v.handler)
		store := iostorage.New(config.StorageConfig{
			URL:        srv.URL,
			TimeoutSec: 5,
		})

		_, err := store.Upload(
			context.Background(), []byte("x"), "f.jpg", "/f")
		assert.Error(t, err, v.msg)

		srv.Close()
	}
}
