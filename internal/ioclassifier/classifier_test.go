package ioclassifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leafdex/leafdex/internal/ioclassifier"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) leafdex.Classifier {
	return ioclassifier.New(config.ClassifierConfig{
		URL:        url,
		APIKey:     "secret",
		Model:      "botanist-lite",
		TimeoutSec: 5,
	})
}

func validJudgment() map[string]any {
	return map[string]any{
		"isPlant":        true,
		"commonName":     "Money Plant",
		"scientificName": "Epipremnum aureum",
		"description":    "A hardy climber.",
		"confidence":     0.95,
		"rarity":         map[string]any{"score": 2.0, "level": "Common"},
		"health":         map[string]any{"score": 85, "status": "HEALTHY"},
		"careSchedule": []map[string]any{
			{
				"taskName":      "Morning Sip",
				"action":        "WATER",
				"frequencyDays": 2,
				"xpReward":      15,
				"instruction":   "Water until moist.",
			},
		},
		"imageSourceConfidence": map[string]any{
			"realPlant":     0.9,
			"screenOrPhoto": 0.1,
		},
	}
}

func TestClassify(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "botanist-lite", req["model"])
			assert.Equal(t, "image/jpeg", req["mime_type"])

			json.NewEncoder(w).Encode(validJudgment())
		}))
	defer srv.Close()

	c := newClient(srv.URL)
	j, err := c.Classify(
		context.Background(),
		[]byte("fakeimage"),
		"application/octet-stream",
		"Rourkela, Odisha, India",
	)
	require.NoError(t, err)

	assert.Equal(t, "/v1/identify", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.True(t, j.IsPlant)
	assert.Equal(t, "Money Plant", j.CommonName)
	assert.Equal(t, 0.95, j.Confidence)
	require.Len(t, j.CareSchedule, 1)
	assert.Equal(t, 2, j.CareSchedule[0].FrequencyDays)
}

func TestClassify_FailsClosed(t *testing.T) {
	tests := []struct {
		msg     string
		handler http.HandlerFunc
	}{
		{
			msg: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			msg: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("```json\n{\"isPlant\": true}\n```"))
			},
		},
		{
			msg: "out-of-range confidence",
			handler: func(w http.ResponseWriter, r *http.Request) {
				j := validJudgment()
				j["confidence"] = 3.5
				json.NewEncoder(w).Encode(j)
			},
		},
		{
			msg: "image source confidences do not sum to 1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				j := validJudgment()
				j["imageSourceConfidence"] = map[string]any{
					"realPlant":     0.9,
					"screenOrPhoto": 0.9,
				}
				json.NewEncoder(w).Encode(j)
			},
		},
		{
			msg: "plant without a name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				j := validJudgment()
				j["commonName"] = ""
				json.NewEncoder(w).Encode(j)
			},
		},
	}

	for _, v := range tests {
		srv := httptest.NewServer(v.handler)
		c := newClient(srv.URL)

		_, err := c.Classify(
			context.Background(), []byte("x"), "image/jpeg", "loc")
		assert.Error(t, err, v.msg)
		assert.True(t, errors.Is(err, leafdex.ErrAnalysisFailed), v.msg)

		srv.Close()
	}
}

func TestCheckup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkup", r.URL.Path)

			var req struct {
				History []leafdex.CareEvent `json:"history"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.History, 2)

			json.NewEncoder(w).Encode(leafdex.HealthCheck{
				ValidImage:  true,
				HealthScore: 90,
				Status:      "Looking hydrated and happy!",
				Tip:         "Let the soil dry for two days.",
			})
		}))
	defer srv.Close()

	c := newClient(srv.URL)
	h, err := c.Checkup(
		context.Background(),
		[]byte("fakeimage"),
		"image/png",
		[]leafdex.CareEvent{
			{Action: "WATER", When: "2025-06-14"},
			{Action: "FERTILIZE", When: "2025-06-01"},
		},
	)
	require.NoError(t, err)
	assert.True(t, h.ValidImage)
	assert.Equal(t, 90, h.HealthScore)
}
