// Package zone maps between instants and local date-times.
//
// Rules come in two flavors. FixedOffsetRules apply one offset forever.
// RegionRules replay a list of historical transitions and hand queries past
// the last one to a recurring TransitionRule. Local date-times that fall
// into a gap or an overlap are reported through ValidOffsets and resolved to
// an instant with an explicit Resolution.
package zone

import (
	"fmt"

	"github.com/ngrash/go-tzrules/chrono"
)

// Period describes the state of local clocks on one side of a transition.
type Period struct {
	// Offset is the total UTC offset.
	Offset chrono.ZoneOffset
	// DaylightSaving is the amount Offset is ahead of standard time.
	// It is zero for standard time and may be negative.
	DaylightSaving chrono.Duration
	// IsStandardTime marks periods whose offset is the standard offset.
	IsStandardTime bool
	// Designation is the abbreviation, for example "EST".
	Designation string
}

// StandardPeriod returns a standard-time period at offset.
func StandardPeriod(offset chrono.ZoneOffset, designation string) Period {
	return Period{Offset: offset, IsStandardTime: true, Designation: designation}
}

// DaylightPeriod returns a daylight saving period whose standard offset is std.
func DaylightPeriod(offset, std chrono.ZoneOffset, designation string) Period {
	return Period{
		Offset:         offset,
		DaylightSaving: offset.Duration().Sub(std.Duration()),
		Designation:    designation,
	}
}

// standardOffset returns Offset minus DaylightSaving.
func (p Period) standardOffset() chrono.ZoneOffset {
	if p.IsStandardTime || p.DaylightSaving.IsZero() {
		return p.Offset
	}
	return offsetOf(p.Offset.Duration().Sub(p.DaylightSaving))
}

// TransitionKind tells whether a transition skips or repeats local time.
type TransitionKind int

const (
	// Gap transitions move clocks forward and skip a range of local times.
	Gap TransitionKind = iota
	// Overlap transitions move clocks back and repeat a range of local times.
	Overlap
)

func (k TransitionKind) String() string {
	switch k {
	case Gap:
		return "gap"
	case Overlap:
		return "overlap"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// Transition is a single change of the UTC offset.
//
// The local boundaries span the local times affected by the change: for a
// gap the times that never occur, for an overlap the times that occur twice.
// The window is half open, [LocalStart, LocalEnd).
type Transition struct {
	instant    chrono.Instant
	before     Period
	after      Period
	localStart chrono.LocalDateTime
	localEnd   chrono.LocalDateTime
}

// NewTransition returns the transition from before to after at instant at.
func NewTransition(at chrono.Instant, before, after Period) (Transition, error) {
	if before.Offset == after.Offset {
		return Transition{}, fmt.Errorf("%w: %v at %v", ErrEqualOffsets, before.Offset, at)
	}
	return newTransition(at, before, after), nil
}

func newTransition(at chrono.Instant, before, after Period) Transition {
	lo, hi := before.Offset, after.Offset
	if lo.Compare(hi) > 0 {
		lo, hi = hi, lo
	}
	return Transition{
		instant:    at,
		before:     before,
		after:      after,
		localStart: chrono.LocalAt(at, lo),
		localEnd:   chrono.LocalAt(at, hi),
	}
}

// Instant returns the moment the offset changes.
func (t Transition) Instant() chrono.Instant { return t.instant }

// Before returns the period in effect up to the transition.
func (t Transition) Before() Period { return t.before }

// After returns the period in effect from the transition on.
func (t Transition) After() Period { return t.after }

// Designation returns the abbreviation in effect after the transition.
func (t Transition) Designation() string { return t.after.Designation }

// IsDaylightSavingTime reports whether the period after the transition
// observes daylight saving time.
func (t Transition) IsDaylightSavingTime() bool { return !t.after.DaylightSaving.IsZero() }

// IsStandardTime reports whether the period after the transition is standard time.
func (t Transition) IsStandardTime() bool { return t.after.IsStandardTime }

// LocalStart returns the first local time inside the transition window.
func (t Transition) LocalStart() chrono.LocalDateTime { return t.localStart }

// LocalEnd returns the first local time after the transition window.
func (t Transition) LocalEnd() chrono.LocalDateTime { return t.localEnd }

// Kind returns Gap when clocks move forward and Overlap otherwise.
func (t Transition) Kind() TransitionKind {
	if t.before.Offset.Compare(t.after.Offset) < 0 {
		return Gap
	}
	return Overlap
}

// Duration returns the change of the offset, positive for gaps.
func (t Transition) Duration() chrono.Duration {
	return t.after.Offset.Duration().Sub(t.before.Offset.Duration())
}

// Contains reports whether local lies inside the transition window.
func (t Transition) Contains(local chrono.LocalDateTime) bool {
	return !local.Before(t.localStart) && local.Before(t.localEnd)
}

// ValidOffsets classifies local relative to this transition alone.
func (t Transition) ValidOffsets(local chrono.LocalDateTime) ValidOffsets {
	switch {
	case local.Before(t.localStart):
		return NormalOffsets(t.before.Offset)
	case !local.Before(t.localEnd):
		return NormalOffsets(t.after.Offset)
	case t.Kind() == Gap:
		return SkippedOffsets(t)
	default:
		return AmbiguousOffsets(t)
	}
}

// IsValidOffset reports whether offset is a valid offset for local.
func (t Transition) IsValidOffset(offset chrono.ZoneOffset, local chrono.LocalDateTime) bool {
	return t.ValidOffsets(local).Contains(offset)
}

// Equal reports whether t and u describe the same transition.
func (t Transition) Equal(u Transition) bool { return t == u }

func (t Transition) String() string {
	return fmt.Sprintf("%v %v at %v (%v to %v)", t.Kind(), t.Duration(), t.instant, t.before.Offset, t.after.Offset)
}

// offsetOf converts a whole-second duration to an offset, panicking on
// values that cannot be offsets.
func offsetOf(d chrono.Duration) chrono.ZoneOffset {
	n, ok := d.Nanoseconds()
	if !ok {
		panic(fmt.Sprintf("zone: offset %v out of range", d))
	}
	return chrono.MustZoneOffset(int(n / 1e9))
}
