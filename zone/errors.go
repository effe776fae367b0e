package zone

import "errors"

var (
	// ErrSkippedTime is returned when a local time falls into a gap and the
	// resolution rejects skipped times.
	ErrSkippedTime = errors.New("local time skipped by a transition")

	// ErrAmbiguousTime is returned when a local time falls into an overlap
	// and the resolution rejects ambiguous times.
	ErrAmbiguousTime = errors.New("local time ambiguous in a transition")

	// ErrTransitionOrder is returned by NewRegionRules when transitions are
	// not strictly increasing in instant and local boundaries.
	ErrTransitionOrder = errors.New("transitions out of order")

	// ErrEqualOffsets is returned when a transition would not change the offset.
	ErrEqualOffsets = errors.New("transition offsets are equal")
)
