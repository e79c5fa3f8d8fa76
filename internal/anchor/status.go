package anchor

// Status is the render state of one anchor at a given moment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// missedAfterMinutes is the grace window past an anchor's target time
// before it counts as missed.
const missedAfterMinutes = 120

// Classify returns the state of an anchor whose target time is target, as
// seen at now. A completed anchor is completed regardless of timing. Both
// times are minutes-since-midnight on the same nominal day: when target is
// late evening and now is early morning the difference goes negative, which
// reads as "not yet due", never as missed.
func Classify(completed bool, target, now TimeOfDay) Status {
	if completed {
		return StatusCompleted
	}
	if now.Minutes()-target.Minutes() > missedAfterMinutes {
		return StatusMissed
	}
	return StatusPending
}
