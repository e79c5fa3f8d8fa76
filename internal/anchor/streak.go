package anchor

import "time"

// DateLayout is the calendar-date form used for lastActiveDate.
const DateLayout = "2006-01-02"

// StreakState tracks consecutive active days. A zero LastActive means the
// user has never activated the app.
type StreakState struct {
	Count      int
	LastActive time.Time
}

const daySec int64 = 24 * 60 * 60

func dayNumber(t time.Time) int64 {
	return t.UTC().Truncate(24*time.Hour).Unix() / daySec
}

// AdvanceStreak applies one daily activation at today. The streak grows only
// when the previous activation was exactly yesterday; a repeat activation on
// the same day is a no-op, and any other gap, including a lastActive in the
// future from a clock rollback, resets the count to 1. LastActive always
// moves to today, which makes the transition idempotent per calendar day.
func AdvanceStreak(s StreakState, today time.Time) StreakState {
	if s.LastActive.IsZero() {
		return StreakState{Count: 1, LastActive: today}
	}

	last := dayNumber(s.LastActive)
	now := dayNumber(today)

	switch now - last {
	case 0:
		return s
	case 1:
		return StreakState{Count: s.Count + 1, LastActive: today}
	}
	return StreakState{Count: 1, LastActive: today}
}
