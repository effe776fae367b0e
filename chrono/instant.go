package chrono

// Instant is a point on the UTC time line, held as the Duration elapsed
// since 1970-01-01T00:00:00Z. Instants are comparable with == and hash by
// their nanosecond count.
type Instant struct {
	d Duration
}

var (
	// MinInstant is the start of the earliest supported civil year in UTC.
	MinInstant = LocalDateTime{date: LocalDate{year: MinYear, month: 1, day: 1}}.Instant(UTC)
	// MaxInstant is the last nanosecond of the latest supported civil year in UTC.
	MaxInstant = LocalDateTime{
		date: LocalDate{year: MaxYear, month: 12, day: 31},
		time: LocalTime{hour: 23, minute: 59, second: 59, nanosecond: nanosPerSecond - 1},
	}.Instant(UTC)
)

// Unix returns the Instant sec seconds and nsec nanoseconds after the Unix
// epoch. nsec may be outside [0, 999999999].
func Unix(sec, nsec int64) Instant {
	return Instant{d: Seconds(sec).Add(Nanoseconds(nsec))}
}

// InstantOf returns the Instant d after the Unix epoch.
func InstantOf(d Duration) Instant { return Instant{d: d} }

// Add returns i+d.
func (i Instant) Add(d Duration) Instant { return Instant{d: i.d.Add(d)} }

// Minus returns i-d.
func (i Instant) Minus(d Duration) Instant { return Instant{d: i.d.Sub(d)} }

// Sub returns the Duration i-j.
func (i Instant) Sub(j Instant) Duration { return i.d.Sub(j.d) }

// SinceEpoch returns the Duration elapsed since the Unix epoch.
func (i Instant) SinceEpoch() Duration { return i.d }

// EpochSecond returns the number of whole seconds since the Unix epoch,
// rounded toward negative infinity.
func (i Instant) EpochSecond() int64 {
	q, _ := i.d.floorDivMod(nanosPerSecond)
	n, ok := q.Nanoseconds()
	if !ok {
		panic("chrono: instant out of epoch-second range")
	}
	return n
}

// Nanosecond returns the nanosecond within the second, in [0, 999999999].
func (i Instant) Nanosecond() int {
	_, r := i.d.floorDivMod(nanosPerSecond)
	return int(r)
}

// Compare returns -1, 0 or +1 depending on whether i is before, equal to
// or after j.
func (i Instant) Compare(j Instant) int { return i.d.Compare(j.d) }

// Before reports whether i is before j.
func (i Instant) Before(j Instant) bool { return i.Compare(j) < 0 }

// After reports whether i is after j.
func (i Instant) After(j Instant) bool { return i.Compare(j) > 0 }

// Equal reports whether i and j are the same instant.
func (i Instant) Equal(j Instant) bool { return i == j }

// String formats i as an ISO 8601 UTC timestamp.
func (i Instant) String() string {
	return LocalAt(i, UTC).String() + "Z"
}
