package leafdex

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Plant health statuses as reported by the classifier.
const (
	StatusHealthy  = "HEALTHY"
	StatusWilted   = "WILTED"
	StatusDiseased = "DISEASED"
)

// Care log actions.
const (
	ActionTaskComplete = "TASK_COMPLETE"
	ActionDailyCheckin = "DAILY_CHECKIN"
)

// sourceSumEpsilon is the allowed deviation of
// realPlant + screenOrPhoto from 1.0.
const sourceSumEpsilon = 0.01

// Judgment is the structured verdict of the external image classifier
// for a discovery submission. It is validated at the collaborator
// boundary; malformed judgments never reach the persistence layer.
type Judgment struct {
	IsPlant        bool             `json:"isPlant"`
	CommonName     string           `json:"commonName"`
	ScientificName string           `json:"scientificName"`
	Description    string           `json:"description"`
	Confidence     float64          `json:"confidence"`
	Rarity         RarityJudgment   `json:"rarity"`
	Health         HealthJudgment   `json:"health"`
	CareSchedule   []CareTaskSpec   `json:"careSchedule"`
	ImageSource    SourceConfidence `json:"imageSourceConfidence"`
}

// RarityJudgment is the classifier's species-wide scarcity estimate.
type RarityJudgment struct {
	// Score ranges 0 (very common) to 10 (endangered).
	Score    float64 `json:"score"`
	Level    string  `json:"level"`
	Locality string  `json:"locality"`
}

// HealthJudgment is the classifier's health assessment of the plant
// on the submitted photo.
type HealthJudgment struct {
	Score     int    `json:"score"`
	Status    string `json:"status"`
	Diagnosis string `json:"diagnosis"`
}

// CareTaskSpec is one recurring chore suggested by the classifier.
type CareTaskSpec struct {
	TaskName      string `json:"taskName"`
	Action        string `json:"action"`
	FrequencyDays int    `json:"frequencyDays"`
	XPReward      int    `json:"xpReward"`
	Instruction   string `json:"instruction"`
}

// SourceConfidence estimates whether the photo shows a real plant or
// a screen/photo-of-photo. The two values sum to 1.0.
type SourceConfidence struct {
	RealPlant     float64 `json:"realPlant"`
	ScreenOrPhoto float64 `json:"screenOrPhoto"`
}

// Validate checks structural invariants of a judgment. It fails
// closed: any out-of-range or missing required field makes the whole
// analysis unusable.
func (j *Judgment) Validate() error {
	if j.Confidence < 0 || j.Confidence > 1 {
		return fmt.Errorf("confidence %v out of [0,1]", j.Confidence)
	}
	if j.Rarity.Score < 0 || j.Rarity.Score > 10 {
		return fmt.Errorf("rarity score %v out of [0,10]", j.Rarity.Score)
	}
	if j.Health.Score < 0 || j.Health.Score > 100 {
		return fmt.Errorf("health score %d out of [0,100]", j.Health.Score)
	}
	sum := j.ImageSource.RealPlant + j.ImageSource.ScreenOrPhoto
	if math.Abs(sum-1.0) > sourceSumEpsilon {
		return fmt.Errorf("image source confidence sums to %v, want 1.0", sum)
	}
	if j.IsPlant && strings.TrimSpace(j.CommonName) == "" {
		return errors.New("isPlant is true but commonName is empty")
	}
	for i, t := range j.CareSchedule {
		if t.FrequencyDays < 1 {
			return fmt.Errorf("care task %d: frequencyDays %d < 1",
				i, t.FrequencyDays)
		}
	}
	return nil
}

// HealthCheck is the classifier's verdict for a care-verification
// photo.
type HealthCheck struct {
	ValidImage      bool   `json:"validImage"`
	RejectionReason string `json:"rejectionReason"`
	HealthScore     int    `json:"healthScore"`
	Status          string `json:"status"`
	Tip             string `json:"tip"`
}

// Validate checks structural invariants of a health check.
func (h *HealthCheck) Validate() error {
	if h.HealthScore < 0 || h.HealthScore > 100 {
		return fmt.Errorf("health score %d out of [0,100]", h.HealthScore)
	}
	return nil
}
