package server

import (
	"time"

	"github.com/circadianhq/circadian/internal/anchor"
	"github.com/circadianhq/circadian/internal/logger"
	"github.com/circadianhq/circadian/pkg/circadian"
)

const (
	defaultWakeUpTime = "07:00"
	defaultBedtime    = "23:00"
)

// defaultState is the fresh record handed out before any settings have been
// saved: the full catalog with nothing completed and no streak history.
func defaultState() *circadian.UserState {
	anchors := make([]circadian.AnchorRecord, 0, len(anchor.Catalog))
	for _, d := range anchor.Catalog {
		anchors = append(anchors, circadian.AnchorRecord{ID: d.ID})
	}
	return &circadian.UserState{
		Name:       "Friend",
		Chronotype: circadian.ChronotypeDove,
		WakeUpTime: defaultWakeUpTime,
		Bedtime:    defaultBedtime,
		Anchors:    anchors,
	}
}

func (s *Server) loadOrInit(userID string) (*circadian.UserState, error) {
	st, found, err := s.store.LoadState(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultState(), nil
	}
	reconcileAnchors(st)
	return st, nil
}

// reconcileAnchors realigns a loaded record with the current catalog: new
// anchors appear uncompleted, retired ids drop out, order follows the
// catalog. Completion flags survive for ids that still exist.
func reconcileAnchors(st *circadian.UserState) {
	completed := make(map[string]bool, len(st.Anchors))
	for _, r := range st.Anchors {
		completed[r.ID] = r.Completed
	}
	anchors := make([]circadian.AnchorRecord, 0, len(anchor.Catalog))
	for _, d := range anchor.Catalog {
		anchors = append(anchors, circadian.AnchorRecord{ID: d.ID, Completed: completed[d.ID]})
	}
	st.Anchors = anchors
}

// scheduleTimes parses the stored wake and bed times, substituting the
// defaults if a saved value no longer parses.
func scheduleTimes(st *circadian.UserState) (anchor.TimeOfDay, anchor.TimeOfDay) {
	wake, err := anchor.ParseTimeOfDay(st.WakeUpTime)
	if err != nil {
		logger.Warn("Unparseable wake-up time, using default", "value", st.WakeUpTime)
		wake, _ = anchor.ParseTimeOfDay(defaultWakeUpTime)
	}
	bed, err := anchor.ParseTimeOfDay(st.Bedtime)
	if err != nil {
		logger.Warn("Unparseable bedtime, using default", "value", st.Bedtime)
		bed, _ = anchor.ParseTimeOfDay(defaultBedtime)
	}
	return wake, bed
}

// anchorViews joins the catalog, the user's completion flags, and the clock
// into the ordered render list.
func anchorViews(st *circadian.UserState, now time.Time) []AnchorView {
	wake, bed := scheduleTimes(st)
	nowTOD := anchor.FromClock(now)

	completed := make(map[string]bool, len(st.Anchors))
	for _, r := range st.Anchors {
		completed[r.ID] = r.Completed
	}

	views := make([]AnchorView, 0, len(anchor.Catalog))
	for _, d := range anchor.Catalog {
		target := anchor.ComputeTime(d.ID, wake, bed)
		views = append(views, AnchorView{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Icon:        d.Icon,
			Time:        target.String(),
			Completed:   completed[d.ID],
			Status:      anchor.Classify(completed[d.ID], target, nowTOD),
		})
	}
	return views
}

func streakState(st *circadian.UserState) anchor.StreakState {
	out := anchor.StreakState{Count: st.Streak}
	if st.LastActiveDate != "" {
		if d, err := time.Parse(anchor.DateLayout, st.LastActiveDate); err == nil {
			out.LastActive = d
		} else {
			logger.Warn("Unparseable last active date", "value", st.LastActiveDate)
		}
	}
	return out
}

// applyDay runs the once-per-activation transition: on the first activation
// of a new calendar day all completion flags clear, then the streak
// advances. Same-day repeats change nothing.
func applyDay(st *circadian.UserState, today time.Time) (rolledOver bool) {
	todayStr := today.UTC().Format(anchor.DateLayout)
	if st.LastActiveDate != "" && st.LastActiveDate != todayStr {
		for i := range st.Anchors {
			st.Anchors[i].Completed = false
		}
		st.SyncScore = anchor.Score(st.Anchors).Percent
		rolledOver = true
	}

	next := anchor.AdvanceStreak(streakState(st), today)
	st.Streak = next.Count
	st.LastActiveDate = todayStr
	return rolledOver
}
