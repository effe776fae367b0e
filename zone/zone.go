package zone

import "github.com/ngrash/go-tzrules/chrono"

// Zone pairs an identifier such as "America/New_York" with its rules.
// Many zones may share one Rules value.
type Zone struct {
	id    string
	rules Rules
}

// New returns the zone id governed by rules.
func New(id string, rules Rules) Zone {
	return Zone{id: id, rules: rules}
}

// Fixed returns a zone with a constant offset. Its identifier is "UTC" for
// the zero offset and the offset text, for example "+05:30", otherwise.
func Fixed(offset chrono.ZoneOffset) Zone {
	r := NewFixedOffsetRules(offset)
	return Zone{id: r.designation, rules: r}
}

// UTC is the zone with the zero offset.
var UTC = Fixed(chrono.UTC)

func (z Zone) ID() string     { return z.id }
func (z Zone) Rules() Rules   { return z.rules }
func (z Zone) String() string { return z.id }

// Offset returns the offset in effect at an instant.
func (z Zone) Offset(at chrono.Instant) chrono.ZoneOffset { return z.rules.Offset(at) }

// OffsetForLocal returns the best-effort offset for a local date-time.
func (z Zone) OffsetForLocal(local chrono.LocalDateTime) chrono.ZoneOffset {
	return z.rules.OffsetForLocal(local)
}

// Local returns the local date-time of an instant in z. Like chrono.LocalAt
// it panics if that date-time falls outside the supported years.
func (z Zone) Local(at chrono.Instant) chrono.LocalDateTime {
	return chrono.LocalAt(at, z.rules.Offset(at))
}

// Instant resolves local to an instant in z using res.
func (z Zone) Instant(local chrono.LocalDateTime, res Resolution) (chrono.Instant, error) {
	return z.rules.ValidOffsets(local).Apply(res, local)
}
