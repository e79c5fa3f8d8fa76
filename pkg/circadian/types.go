package circadian

// Chronotype is the user's self-reported sleep pattern. It is stored and
// displayed but takes no part in anchor time calculation.
type Chronotype string

const (
	ChronotypeLark Chronotype = "lark"
	ChronotypeDove Chronotype = "dove"
	ChronotypeOwl  Chronotype = "owl"
)

func (c Chronotype) Valid() bool {
	switch c {
	case ChronotypeLark, ChronotypeDove, ChronotypeOwl:
		return true
	}
	return false
}

// AnchorRecord is the per-day completion flag for one catalog anchor.
type AnchorRecord struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// UserState is the full persisted record for one user.
type UserState struct {
	Name           string         `json:"name"`
	Chronotype     Chronotype     `json:"chronotype"`
	WakeUpTime     string         `json:"wakeUpTime"`
	Bedtime        string         `json:"bedtime"`
	Streak         int            `json:"streak"`
	LastActiveDate string         `json:"lastActiveDate,omitempty"`
	SyncScore      int            `json:"syncScore"`
	Anchors        []AnchorRecord `json:"anchors"`
}
