package anchor

// defaultTime is returned for ids not present in the catalog. The original
// tracker treats an unknown anchor as an 08:00 reminder rather than an error.
var defaultTime = TimeOfDay{Hour: 8}

// ComputeTime derives the target clock time for an anchor from the user's
// wake-up time and bedtime. Arithmetic wraps modulo 24 hours, so a first
// meal after a 23:30 wake-up lands at 00:30, not 24:30.
func ComputeTime(id string, wake, bed TimeOfDay) TimeOfDay {
	def, ok := Lookup(id)
	if !ok {
		return defaultTime
	}
	switch def.Rule.kind {
	case afterWake:
		return wake.AddMinutes(def.Rule.minutes)
	case fixedClock:
		return def.Rule.at
	case beforeBed:
		return bed.AddMinutes(-def.Rule.minutes)
	}
	return defaultTime
}
