// Package ioclassifier implements the image classifier collaborator
// over HTTP. The classifier is a black box returning a structured
// judgment; this package validates the judgment at the boundary and
// fails closed on anything malformed.
package ioclassifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
)

type client struct {
	cfg  config.ClassifierConfig
	http *http.Client
}

// New creates a classifier client from configuration.
func New(cfg config.ClassifierConfig) leafdex.Classifier {
	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// identifyRequest is the wire format of a discovery analysis call.
// Image bytes travel base64-encoded (encoding/json does this for
// []byte automatically).
type identifyRequest struct {
	Model           string `json:"model"`
	Image           []byte `json:"image"`
	MimeType        string `json:"mime_type"`
	LocationContext string `json:"location_context"`
}

// checkupRequest is the wire format of a care checkup call.
type checkupRequest struct {
	Model    string              `json:"model"`
	Image    []byte              `json:"image"`
	MimeType string              `json:"mime_type"`
	History  []leafdex.CareEvent `json:"history"`
}

func (c *client) Classify(
	ctx context.Context,
	image []byte,
	mimeType, locationContext string,
) (*leafdex.Judgment, error) {
	req := identifyRequest{
		Model:           c.cfg.Model,
		Image:           image,
		MimeType:        normalizeMime(mimeType),
		LocationContext: locationContext,
	}

	var j leafdex.Judgment
	if err := c.post(ctx, "/v1/identify", req, &j); err != nil {
		return nil, err
	}
	if err := j.Validate(); err != nil {
		return nil, InvalidJudgmentError(err)
	}
	return &j, nil
}

func (c *client) Checkup(
	ctx context.Context,
	image []byte,
	mimeType string,
	history []leafdex.CareEvent,
) (*leafdex.HealthCheck, error) {
	req := checkupRequest{
		Model:    c.cfg.Model,
		Image:    image,
		MimeType: normalizeMime(mimeType),
		History:  history,
	}

	var h leafdex.HealthCheck
	if err := c.post(ctx, "/v1/checkup", req, &h); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, InvalidJudgmentError(err)
	}
	return &h, nil
}

// post sends one JSON request and decodes a JSON response strictly.
// Any transport failure, non-200 status or undecodable body counts as
// a failed analysis; missing fields never default silently into the
// reward path.
func (c *client) post(
	ctx context.Context,
	path string,
	payload, out any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return RequestError(path, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.URL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return RequestError(path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return RequestError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RequestError(path,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return DecodeError(path, err)
	}
	return nil
}

// normalizeMime maps generic octet streams to JPEG, the dominant
// camera upload type.
func normalizeMime(mimeType string) string {
	if mimeType == "" || mimeType == "application/octet-stream" {
		return "image/jpeg"
	}
	return mimeType
}
