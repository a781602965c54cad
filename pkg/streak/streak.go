// Package streak implements the calendar-day caretaking streak.
// Pure computation: the caller supplies the previous state, the
// current time and the timezone that defines the calendar boundary.
package streak

import "time"

// State is the streak portion of a caretaker link.
type State struct {
	Current     int
	Longest     int
	LastLogDate *time.Time
}

// Advance applies one care verification to the streak state machine:
//
//   - no prior log: streak starts at 1;
//   - prior log yesterday: streak grows by 1;
//   - prior log today: streak unchanged (no same-day double count);
//   - gap of two days or more: streak resets to 1.
//
// Longest is raised to the new current when exceeded and the last log
// date always becomes now. Days are calendar days in loc, not rolling
// 24h windows.
func Advance(s State, now time.Time, loc *time.Location) State {
	current := 1
	if s.LastLogDate != nil {
		switch daysBetween(*s.LastLogDate, now, loc) {
		case 0:
			current = s.Current
		case 1:
			current = s.Current + 1
		}
	}

	longest := s.Longest
	if current > longest {
		longest = current
	}

	return State{
		Current:     current,
		Longest:     longest,
		LastLogDate: &now,
	}
}

// daysBetween returns the number of calendar-day boundaries in loc
// crossed between a and b.
func daysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
