// Package ioauth implements bearer-token verification against the
// external auth collaborator. The returned user id is trusted
// completely by the core.
package ioauth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
)

type client struct {
	cfg  config.AuthConfig
	http *http.Client
}

// New creates a token verifier from configuration.
func New(cfg config.AuthConfig) leafdex.TokenVerifier {
	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// introspection is the auth service's answer for a valid token.
type introspection struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

func (c *client) Verify(
	ctx context.Context,
	token string,
) (*leafdex.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, InvalidTokenError(nil)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.URL+"/v1/introspect",
		nil,
	)
	if err != nil {
		return nil, VerifyError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, VerifyError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, InvalidTokenError(nil)
	default:
		return nil, VerifyError(nil)
	}

	var in introspection
	if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
		return nil, VerifyError(err)
	}
	if in.UID == "" {
		return nil, InvalidTokenError(nil)
	}

	return &leafdex.Identity{UserID: in.UID, Email: in.Email}, nil
}
