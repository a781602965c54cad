// Package care implements recurring care-task scheduling.
// Pure computation over schema.CareTask values.
package care

import (
	"time"

	"github.com/leafdex/leafdex/pkg/schema"
)

// Complete marks a task done at now and advances its due date by the
// task's frequency. The due date always moves forward from the
// completion time, never backward; completing twice advances twice.
func Complete(t schema.CareTask, now time.Time) schema.CareTask {
	t.LastCompletedAt = &now
	t.NextDueAt = now.AddDate(0, 0, t.FrequencyDays)
	return t
}
