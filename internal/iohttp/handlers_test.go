package iohttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/leafdex/leafdex/internal/iohttp"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/schema"
)

// stubGame scripts coordinator answers per test.
type stubGame struct {
	discoverRes *leafdex.DiscoveryResult
	discoverErr error
	careRes     *leafdex.CareResult
	careErr     error
	adoptErr    error
	registerErr error
}

func (s *stubGame) Discover(
	ctx context.Context, req *leafdex.DiscoveryRequest,
) (*leafdex.DiscoveryResult, error) {
	return s.discoverRes, s.discoverErr
}

func (s *stubGame) VerifyCare(
	ctx context.Context, req *leafdex.CareRequest,
) (*leafdex.CareResult, error) {
	return s.careRes, s.careErr
}

func (s *stubGame) Adopt(
	ctx context.Context, req *leafdex.AdoptionRequest,
) (*schema.CaretakerLink, error) {
	if s.adoptErr != nil {
		return nil, s.adoptErr
	}
	return &schema.CaretakerLink{
		UserID:  req.UserID,
		PlantID: req.PlantID,
	}, nil
}

func (s *stubGame) Sync(
	ctx context.Context, id leafdex.Identity,
) (*schema.User, error) {
	return &schema.User{ID: id.UserID, Username: "ada1234"}, nil
}

func (s *stubGame) Register(
	ctx context.Context, id leafdex.Identity, username string,
) (*schema.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &schema.User{ID: id.UserID, Username: username}, nil
}

func (s *stubGame) Garden(
	ctx context.Context, userID string,
) ([]leafdex.GardenEntry, error) {
	return []leafdex.GardenEntry{}, nil
}

func (s *stubGame) Leaderboard(
	ctx context.Context,
) ([]leafdex.LeaderboardEntry, error) {
	return []leafdex.LeaderboardEntry{
		{Username: "ada1234", XP: 1250, Level: 2},
	}, nil
}

func (s *stubGame) Discoveries(
	ctx context.Context, page, limit int,
) (*leafdex.Feed, error) {
	return &leafdex.Feed{Items: []leafdex.FeedItem{}, Page: page}, nil
}

func (s *stubGame) UserDiscoveries(
	ctx context.Context, userID string,
) ([]schema.Discovery, error) {
	return []schema.Discovery{}, nil
}

// stubAuth accepts the token "good" and rejects everything else.
type stubAuth struct{}

func (stubAuth) Verify(
	ctx context.Context, token string,
) (*leafdex.Identity, error) {
	if token == "good" {
		return &leafdex.Identity{
			UserID: "user-1",
			Email:  "ada@example.org",
		}, nil
	}
	return nil, fmt.Errorf("%w: token rejected", leafdex.ErrUnauthorized)
}

func newTestServer(game *stubGame) http.Handler {
	srv := iohttp.NewServer(config.New(), game, stubAuth{}, nil)
	return srv.Router()
}

func discoveryForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	assert.Nil(t, err)
	fw.Write([]byte("jpeg-bytes"))
	mw.WriteField("latitude", "22.2604")
	mw.WriteField("longitude", "84.8536")
	mw.WriteField("country", "India")
	mw.WriteField("state", "Odisha")
	mw.WriteField("district", "Rourkela")
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), "ok")
}

func TestAuthRequired(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	for _, path := range []string{
		"/api/discover/mine",
		"/api/user/garden",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(http.StatusUnauthorized, w.Code, path)

		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer bad")
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func TestPublicRoutes(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	for _, path := range []string{
		"/api/discover?page=1",
		"/api/user/leaderboard",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(http.StatusOK, w.Code, path)
	}
}

func TestDiscover(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{
		discoverRes: &leafdex.DiscoveryResult{
			XPEarned:   1250,
			NewTotalXP: 1250,
			Level:      2,
			PlantID:    "plant-1",
		},
	})

	body, contentType := discoveryForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/discover", body)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(http.StatusCreated, w.Code)

	var res leafdex.DiscoveryResult
	err := json.NewDecoder(w.Body).Decode(&res)
	assert.Nil(err)
	assert.Equal(1250, res.XPEarned)
	assert.Equal("plant-1", res.PlantID)
}

func TestDiscoverOutcomes(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg    string
		err    error
		status int
	}{
		{"not a plant", leafdex.ErrNotAPlant, http.StatusUnprocessableEntity},
		{"low confidence", leafdex.ErrLowConfidence, http.StatusUnprocessableEntity},
		{"screen", leafdex.ErrScreenSuspected, http.StatusUnprocessableEntity},
		{"duplicate", leafdex.ErrDuplicateDiscovery, http.StatusConflict},
		{"analysis down", leafdex.ErrAnalysisFailed, http.StatusBadGateway},
	}

	for _, v := range tests {
		h := newTestServer(&stubGame{
			discoverErr: fmt.Errorf("%w: details", v.err),
		})
		body, contentType := discoveryForm(t)
		req := httptest.NewRequest(http.MethodPost, "/api/discover", body)
		req.Header.Set("Authorization", "Bearer good")
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(v.status, w.Code, v.msg)
	}
}

func TestDiscoverBadInput(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	// no multipart body at all
	req := httptest.NewRequest(http.MethodPost, "/api/discover", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(http.StatusBadRequest, w.Code)

	// coordinates out of range
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "photo.jpg")
	fw.Write([]byte("jpeg-bytes"))
	mw.WriteField("latitude", "123.0")
	mw.WriteField("longitude", "84.0")
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/discover", &buf)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(http.StatusBadRequest, w.Code)
}

func TestVerifyCare(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{
		careRes: &leafdex.CareResult{
			HealthUpdate: leafdex.StatusHealthy,
			Tip:          "water in the morning",
			XPGained:     50,
		},
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "photo.jpg")
	fw.Write([]byte("jpeg-bytes"))
	mw.WriteField("plant_id", "plant-1")
	mw.WriteField("task_id", "task-1")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/care/verify", &buf)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)

	var res leafdex.CareResult
	err := json.NewDecoder(w.Body).Decode(&res)
	assert.Nil(err)
	assert.Equal(50, res.XPGained)
}

func TestVerifyCareNotFound(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{
		careErr: fmt.Errorf("%w: plant-9", leafdex.ErrPlantNotFound),
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "photo.jpg")
	fw.Write([]byte("jpeg-bytes"))
	mw.WriteField("plant_id", "plant-9")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/care/verify", &buf)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(http.StatusNotFound, w.Code)
}

func TestAdopt(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	body, _ := json.Marshal(map[string]any{"plant_id": "plant-1"})
	req := httptest.NewRequest(
		http.MethodPost, "/api/care/adopt", bytes.NewReader(body),
	)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(http.StatusCreated, w.Code)

	// adopting again conflicts
	h = newTestServer(&stubGame{
		adoptErr: fmt.Errorf("%w: plant-1", leafdex.ErrAlreadyCaretaker),
	})
	req = httptest.NewRequest(
		http.MethodPost, "/api/care/adopt", bytes.NewReader(body),
	)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(http.StatusConflict, w.Code)
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	body, _ := json.Marshal(map[string]string{"username": "planter"})
	req := httptest.NewRequest(
		http.MethodPost, "/api/auth/register", bytes.NewReader(body),
	)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(http.StatusCreated, w.Code)

	h = newTestServer(&stubGame{
		registerErr: fmt.Errorf("%w: planter", leafdex.ErrUsernameTaken),
	})
	req = httptest.NewRequest(
		http.MethodPost, "/api/auth/register", bytes.NewReader(body),
	)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(&stubGame{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(string(body), "ada1234")
}
