// Package iostorage implements the image storage collaborator over
// HTTP. Uploads are deliberately outside any store transaction: an
// orphaned image after a rolled-back submission is accepted in
// exchange for running the upload concurrently with classification.
package iostorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
)

type client struct {
	cfg  config.StorageConfig
	http *http.Client
}

// New creates an image store client from configuration.
func New(cfg config.StorageConfig) leafdex.ImageStore {
	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// uploadResponse is the storage service's answer to a file upload.
type uploadResponse struct {
	URL string `json:"url"`
}

func (c *client) Upload(
	ctx context.Context,
	image []byte,
	fileName, folder string,
) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", UploadError(fileName, err)
	}
	if _, err := part.Write(image); err != nil {
		return "", UploadError(fileName, err)
	}
	if err := mw.WriteField("folder", folder); err != nil {
		return "", UploadError(fileName, err)
	}
	if err := mw.Close(); err != nil {
		return "", UploadError(fileName, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.URL+"/v1/files",
		&body,
	)
	if err != nil {
		return "", UploadError(fileName, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.cfg.PrivateKey != "" {
		req.SetBasicAuth(c.cfg.PrivateKey, "")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", UploadError(fileName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", UploadError(fileName,
			fmt.Errorf("status %d: %s", resp.StatusCode, b))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", UploadError(fileName, err)
	}
	if out.URL == "" {
		return "", UploadError(fileName,
			fmt.Errorf("storage returned an empty url"))
	}
	return out.URL, nil
}
