package anchor

// ruleKind selects how an anchor's target time is derived from the user
// schedule.
type ruleKind int

const (
	afterWake ruleKind = iota
	fixedClock
	beforeBed
)

// OffsetRule is the tagged derivation rule for one anchor.
type OffsetRule struct {
	kind    ruleKind
	minutes int       // afterWake: minutes past wake; beforeBed: minutes before bed
	at      TimeOfDay // fixedClock only
}

// AfterWake anchors the target n minutes past wake-up time.
func AfterWake(minutes int) OffsetRule {
	return OffsetRule{kind: afterWake, minutes: minutes}
}

// FixedClock anchors the target at an absolute clock time.
func FixedClock(hour, minute int) OffsetRule {
	return OffsetRule{kind: fixedClock, at: TimeOfDay{Hour: hour, Minute: minute}}
}

// BeforeBed anchors the target n hours before bedtime.
func BeforeBed(hours int) OffsetRule {
	return OffsetRule{kind: beforeBed, minutes: hours * 60}
}

// Definition is one immutable catalog entry.
type Definition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rule        OffsetRule
}

// Catalog is the ordered set of daily anchors. Order is display order.
var Catalog = []Definition{
	{
		ID:          "morning-light",
		Title:       "Morning light",
		Description: "10-15 minutes outside within an hour of waking",
		Icon:        "☀️",
		Rule:        AfterWake(0),
	},
	{
		ID:          "first-meal",
		Title:       "First meal",
		Description: "Breakfast within an hour of waking",
		Icon:        "🍽️",
		Rule:        AfterWake(60),
	},
	{
		ID:          "hydration",
		Title:       "Morning hydration",
		Description: "A glass of water after waking",
		Icon:        "💧",
		Rule:        AfterWake(10),
	},
	{
		ID:          "daylight-exposure",
		Title:       "Daylight exposure",
		Description: "At least an hour of natural light",
		Icon:        "🔆",
		Rule:        FixedClock(12, 0),
	},
	{
		ID:          "movement",
		Title:       "Daytime movement",
		Description: "30 minutes of physical activity",
		Icon:        "🚶",
		Rule:        FixedClock(15, 0),
	},
	{
		ID:          "digital-sunset",
		Title:       "Digital sunset",
		Description: "Screens off an hour before bed",
		Icon:        "📵",
		Rule:        BeforeBed(1),
	},
	{
		ID:          "last-meal",
		Title:       "Last meal",
		Description: "Dinner finished three hours before bed",
		Icon:        "🌙",
		Rule:        BeforeBed(3),
	},
}

var byID = func() map[string]Definition {
	m := make(map[string]Definition, len(Catalog))
	for _, d := range Catalog {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the catalog entry for id.
func Lookup(id string) (Definition, bool) {
	d, ok := byID[id]
	return d, ok
}
