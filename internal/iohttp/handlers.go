package iohttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/leafdex/leafdex/pkg/leafdex"
)

// maxImageBytes bounds one submission photo.
const maxImageBytes = 10 << 20

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDiscover accepts a multipart discovery submission: an image
// plus coordinates and administrative location fields.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	image, mimeType, err := formImage(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	lat, err := formFloat(r, "latitude")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	lon, err := formFloat(r, "longitude")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		s.respondError(w, r,
			badRequest("coordinates %f,%f out of range", lat, lon))
		return
	}

	req := &leafdex.DiscoveryRequest{
		UserID:    id.UserID,
		Email:     id.Email,
		Image:     image,
		MimeType:  mimeType,
		Latitude:  lat,
		Longitude: lon,
		Country:   r.FormValue("country"),
		State:     r.FormValue("state"),
		District:  r.FormValue("district"),
	}

	res, err := s.game.Discover(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, res)
}

// handleVerifyCare accepts a multipart care submission: an image, the
// plant id and an optional task id.
func (s *Server) handleVerifyCare(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	image, mimeType, err := formImage(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	plantID := r.FormValue("plant_id")
	if plantID == "" {
		s.respondError(w, r, badRequest("plant_id is required"))
		return
	}

	req := &leafdex.CareRequest{
		UserID:   id.UserID,
		PlantID:  plantID,
		TaskID:   r.FormValue("task_id"),
		Image:    image,
		MimeType: mimeType,
	}

	res, err := s.game.VerifyCare(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

type adoptBody struct {
	PlantID      string                 `json:"plant_id"`
	CareSchedule []leafdex.CareTaskSpec `json:"care_schedule"`
}

func (s *Server) handleAdopt(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	var body adoptBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, badRequest("malformed JSON body"))
		return
	}
	if body.PlantID == "" {
		s.respondError(w, r, badRequest("plant_id is required"))
		return
	}

	link, err := s.game.Adopt(r.Context(), &leafdex.AdoptionRequest{
		UserID:       id.UserID,
		PlantID:      body.PlantID,
		CareSchedule: body.CareSchedule,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, link)
}

func (s *Server) handleGarden(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	entries, err := s.game.Garden(r.Context(), id.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.game.Leaderboard(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feed, err := s.game.Discoveries(r.Context(), page, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, feed)
}

func (s *Server) handleMyDiscoveries(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	discs, err := s.game.UserDiscoveries(r.Context(), id.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, discs)
}

// handleLogin syncs the profile behind the verified token, creating
// it on first contact.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	user, err := s.game.Sync(r.Context(), *id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, user)
}

type registerBody struct {
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, badRequest("malformed JSON body"))
		return
	}

	user, err := s.game.Register(r.Context(), *id, body.Username)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, user)
}

// formImage extracts the uploaded image from a multipart form.
func formImage(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, "", badRequest("multipart form expected: %v", err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", badRequest("image file is required")
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, "", badRequest("cannot read image: %v", err)
	}
	if len(image) == 0 {
		return nil, "", badRequest("image file is empty")
	}
	if len(image) > maxImageBytes {
		return nil, "", badRequest("image exceeds %d bytes", maxImageBytes)
	}

	return image, imageMime(header), nil
}

func imageMime(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "image/jpeg"
}

func formFloat(r *http.Request, field string) (float64, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, badRequest("%s is required", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequest("%s is not a number: %q", field, raw)
	}
	return v, nil
}
