package anchor

import (
	"math"

	"github.com/circadianhq/circadian/pkg/circadian"
)

// Tier buckets a sync score for display.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// SyncScore is the share of today's anchors marked completed.
type SyncScore struct {
	Percent int  `json:"percent"`
	Tier    Tier `json:"tier"`
}

// Score reduces a set of anchor records to a completion percentage and
// tier. An empty set scores zero.
func Score(records []circadian.AnchorRecord) SyncScore {
	if len(records) == 0 {
		return SyncScore{Percent: 0, Tier: TierLow}
	}
	done := 0
	for _, r := range records {
		if r.Completed {
			done++
		}
	}
	percent := int(math.Round(100 * float64(done) / float64(len(records))))
	return SyncScore{Percent: percent, Tier: tierFor(percent)}
}

func tierFor(percent int) Tier {
	switch {
	case percent >= 80:
		return TierHigh
	case percent >= 50:
		return TierMedium
	}
	return TierLow
}
