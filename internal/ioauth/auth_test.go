package ioauth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/leafdex/leafdex/internal/ioauth"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
)

func authServer(t *testing.T, handler http.HandlerFunc) config.AuthConfig {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return config.AuthConfig{URL: srv.URL, TimeoutSec: 5}
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)
	cfg := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("/v1/introspect", r.URL.Path)
		assert.Equal("Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"uid": "user-1", "email": "ada@example.org"}`))
	})

	v := ioauth.New(cfg)
	id, err := v.Verify(context.Background(), "tok-123")
	assert.Nil(err)
	assert.Equal("user-1", id.UserID)
	assert.Equal("ada@example.org", id.Email)
}

func TestVerifyRejected(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg    string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`},
		{"forbidden", http.StatusForbidden, `{}`},
		{"empty uid", http.StatusOK, `{"uid": "", "email": "x@y.z"}`},
	}

	for _, v := range tests {
		cfg := authServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(v.status)
			w.Write([]byte(v.body))
		})
		id, err := ioauth.New(cfg).Verify(context.Background(), "tok")
		assert.Nil(id, v.msg)
		assert.True(errors.Is(err, leafdex.ErrUnauthorized), v.msg)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	assert := assert.New(t)
	cfg := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("verifier should not be called for an empty token")
	})
	id, err := ioauth.New(cfg).Verify(context.Background(), "  ")
	assert.Nil(id)
	assert.True(errors.Is(err, leafdex.ErrUnauthorized))
}

func TestVerifyBadBody(t *testing.T) {
	assert := assert.New(t)
	cfg := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	id, err := ioauth.New(cfg).Verify(context.Background(), "tok")
	assert.Nil(id)
	assert.NotNil(err)
}
