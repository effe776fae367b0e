package zone

import "github.com/ngrash/go-tzrules/chrono"

// Rules answers offset questions for one time zone.
// Implementations are immutable or internally synchronized and safe for
// concurrent use.
type Rules interface {
	// IsFixedOffset reports whether the offset never changes.
	IsFixedOffset() bool
	// StandardOffset returns the standard offset in effect at an instant.
	StandardOffset(at chrono.Instant) chrono.ZoneOffset
	// DaylightSavingTime returns the amount of daylight saving in effect.
	DaylightSavingTime(at chrono.Instant) chrono.Duration
	// IsDaylightSavingTime reports whether daylight saving is in effect.
	IsDaylightSavingTime(at chrono.Instant) bool
	// Offset returns the offset in effect at an instant.
	Offset(at chrono.Instant) chrono.ZoneOffset
	// OffsetForLocal returns a best-effort offset for a local date-time.
	// Inside a gap or an overlap it returns the offset before the transition.
	OffsetForLocal(local chrono.LocalDateTime) chrono.ZoneOffset
	// ValidOffsets returns the offsets valid for a local date-time.
	ValidOffsets(local chrono.LocalDateTime) ValidOffsets
	// IsValidOffset reports whether offset is valid for local.
	IsValidOffset(offset chrono.ZoneOffset, local chrono.LocalDateTime) bool
	// ApplicableTransition returns the transition whose window contains local.
	ApplicableTransition(local chrono.LocalDateTime) (Transition, bool)
	// NextTransition returns the first transition strictly after an instant.
	NextTransition(after chrono.Instant) (Transition, bool)
	// PriorTransition returns the last transition strictly before an instant.
	PriorTransition(before chrono.Instant) (Transition, bool)
	// Designation returns the abbreviation in effect at an instant.
	Designation(at chrono.Instant) string
}

// bestEffort picks the single offset OffsetForLocal reports.
func bestEffort(v ValidOffsets) chrono.ZoneOffset {
	if t, ok := v.Transition(); ok {
		return t.before.Offset
	}
	return v.At(0)
}

// FixedOffsetRules apply one offset at all times.
type FixedOffsetRules struct {
	offset      chrono.ZoneOffset
	designation string
}

var _ Rules = FixedOffsetRules{}

// NewFixedOffsetRules returns rules for a constant offset.
// The designation is "UTC" for the zero offset and the offset text otherwise.
func NewFixedOffsetRules(offset chrono.ZoneOffset) FixedOffsetRules {
	d := offset.String()
	if offset == chrono.UTC {
		d = "UTC"
	}
	return FixedOffsetRules{offset: offset, designation: d}
}

func (r FixedOffsetRules) IsFixedOffset() bool                             { return true }
func (r FixedOffsetRules) StandardOffset(chrono.Instant) chrono.ZoneOffset { return r.offset }
func (r FixedOffsetRules) DaylightSavingTime(chrono.Instant) chrono.Duration {
	return chrono.Duration{}
}
func (r FixedOffsetRules) IsDaylightSavingTime(chrono.Instant) bool { return false }
func (r FixedOffsetRules) Offset(chrono.Instant) chrono.ZoneOffset  { return r.offset }
func (r FixedOffsetRules) Designation(chrono.Instant) string        { return r.designation }

func (r FixedOffsetRules) OffsetForLocal(chrono.LocalDateTime) chrono.ZoneOffset { return r.offset }

func (r FixedOffsetRules) ValidOffsets(chrono.LocalDateTime) ValidOffsets {
	return NormalOffsets(r.offset)
}

func (r FixedOffsetRules) IsValidOffset(offset chrono.ZoneOffset, _ chrono.LocalDateTime) bool {
	return offset == r.offset
}

func (r FixedOffsetRules) ApplicableTransition(chrono.LocalDateTime) (Transition, bool) {
	return Transition{}, false
}

func (r FixedOffsetRules) NextTransition(chrono.Instant) (Transition, bool) {
	return Transition{}, false
}

func (r FixedOffsetRules) PriorTransition(chrono.Instant) (Transition, bool) {
	return Transition{}, false
}
