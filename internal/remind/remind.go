package remind

import (
	"context"
	"time"

	"github.com/circadianhq/circadian/internal/anchor"
	"github.com/circadianhq/circadian/internal/logger"
	"github.com/circadianhq/circadian/internal/server"
)

const minutesPerDay = 24 * 60

// Notifier delivers a one-shot reminder. Delivery is fire-and-forget; a
// returned error is logged, never retried here.
type Notifier interface {
	SendReminder(anchors []server.AnchorView) error
}

// DueWithin selects the pending anchors whose target time falls inside
// [now, now+window] on the clock face. The window wraps across midnight, so
// a 23:30 check with a one-hour window still picks up a 00:15 anchor.
func DueWithin(anchors []server.AnchorView, now anchor.TimeOfDay, window time.Duration) []server.AnchorView {
	windowMins := int(window.Minutes())
	var due []server.AnchorView
	for _, a := range anchors {
		if a.Status != anchor.StatusPending {
			continue
		}
		target, err := anchor.ParseTimeOfDay(a.Time)
		if err != nil {
			logger.Warn("Skipping anchor with unparseable time", "anchor_id", a.ID, "time", a.Time)
			continue
		}
		diff := (target.Minutes() - now.Minutes() + minutesPerDay) % minutesPerDay
		if diff <= windowMins {
			due = append(due, a)
		}
	}
	return due
}

// Remind fetches the current anchor list and sends one reminder covering
// everything due inside the window. Meant to run from cron.
func Remind(ctx context.Context, q Querier, n Notifier, now time.Time, window time.Duration) error {
	anchors, err := q.ListAnchors(ctx)
	if err != nil {
		return err
	}

	due := DueWithin(anchors, anchor.FromClock(now), window)
	if len(due) == 0 {
		logger.Info("No anchors due, skipping reminder", "window", window)
		return nil
	}

	logger.Info("Sending reminder", "count", len(due), "window", window)
	return n.SendReminder(due)
}
