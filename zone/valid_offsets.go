package zone

import (
	"fmt"

	"github.com/ngrash/go-tzrules/chrono"
)

// OffsetsKind classifies the offsets valid for a local date-time.
type OffsetsKind int

const (
	// Normal local times have exactly one valid offset.
	Normal OffsetsKind = iota
	// Skipped local times fall into a gap and have no valid offset.
	Skipped
	// Ambiguous local times fall into an overlap and have several.
	Ambiguous
)

func (k OffsetsKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Skipped:
		return "skipped"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("OffsetsKind(%d)", int(k))
	}
}

// ValidOffsets is the set of offsets valid for one local date-time.
// It behaves like an ordered collection of zero, one or two offsets,
// earliest instant first. The zero value is Normal at UTC.
type ValidOffsets struct {
	kind       OffsetsKind
	n          int
	offsets    [2]chrono.ZoneOffset
	transition Transition
}

// NormalOffsets returns the set holding only offset.
func NormalOffsets(offset chrono.ZoneOffset) ValidOffsets {
	return ValidOffsets{kind: Normal, n: 1, offsets: [2]chrono.ZoneOffset{offset}}
}

// SkippedOffsets returns the empty set for a local time inside gap t.
func SkippedOffsets(t Transition) ValidOffsets {
	return ValidOffsets{kind: Skipped, transition: t}
}

// AmbiguousOffsets returns both offsets of overlap t. The offset before the
// transition maps a local time to the earlier instant and comes first.
func AmbiguousOffsets(t Transition) ValidOffsets {
	return ValidOffsets{
		kind:       Ambiguous,
		n:          2,
		offsets:    [2]chrono.ZoneOffset{t.before.Offset, t.after.Offset},
		transition: t,
	}
}

// Kind returns the classification of the set.
func (v ValidOffsets) Kind() OffsetsKind { return v.kind }

// Len returns the number of valid offsets.
func (v ValidOffsets) Len() int {
	if v.kind == Normal && v.n == 0 {
		return 1
	}
	return v.n
}

// At returns the i-th offset, earliest instant first.
func (v ValidOffsets) At(i int) chrono.ZoneOffset {
	if i < 0 || i >= v.Len() {
		panic(fmt.Sprintf("zone: offset index %d out of range [0:%d]", i, v.Len()))
	}
	return v.offsets[i]
}

// Offsets returns a copy of the valid offsets.
func (v ValidOffsets) Offsets() []chrono.ZoneOffset {
	out := make([]chrono.ZoneOffset, v.Len())
	copy(out, v.offsets[:])
	return out
}

// Contains reports whether offset is one of the valid offsets.
func (v ValidOffsets) Contains(offset chrono.ZoneOffset) bool {
	for i := range v.Len() {
		if v.offsets[i] == offset {
			return true
		}
	}
	return false
}

// Transition returns the transition responsible for a skipped or ambiguous
// set. The boolean is false for normal sets.
func (v ValidOffsets) Transition() (Transition, bool) {
	if v.kind == Normal {
		return Transition{}, false
	}
	return v.transition, true
}

// Equal reports whether v and w hold the same offsets for the same reason.
func (v ValidOffsets) Equal(w ValidOffsets) bool {
	return v.kind == w.kind && v.Len() == w.Len() && v.offsets == w.offsets && v.transition == w.transition
}

func (v ValidOffsets) String() string {
	switch v.kind {
	case Skipped:
		return fmt.Sprintf("skipped(%v)", v.transition)
	case Ambiguous:
		return fmt.Sprintf("ambiguous(%v, %v)", v.offsets[0], v.offsets[1])
	default:
		return fmt.Sprintf("normal(%v)", v.offsets[0])
	}
}

// SkippedPolicy selects the instant for a local time inside a gap.
type SkippedPolicy int

const (
	// NextValid shifts the local time forward by the length of the gap.
	NextValid SkippedPolicy = iota
	// PreviousValid shifts the local time backward by the length of the gap.
	PreviousValid
	// BoundaryStart picks the last instant before the transition.
	BoundaryStart
	// BoundaryEnd picks the transition instant.
	BoundaryEnd
	// BoundaryNearest picks whichever boundary the local time is closer to.
	// The midpoint goes to BoundaryEnd.
	BoundaryNearest
	// RejectSkipped fails with ErrSkippedTime.
	RejectSkipped
)

// AmbiguousPolicy selects the instant for a local time inside an overlap.
type AmbiguousPolicy int

const (
	// Earliest picks the earlier of the candidate instants.
	Earliest AmbiguousPolicy = iota
	// Latest picks the later of the candidate instants.
	Latest
	// RejectAmbiguous fails with ErrAmbiguousTime.
	RejectAmbiguous
)

// Resolution combines the policies for skipped and ambiguous local times.
// The zero value shifts skipped times forward and picks the earliest
// instant for ambiguous ones.
type Resolution struct {
	Skipped   SkippedPolicy
	Ambiguous AmbiguousPolicy
}

// Strict rejects both skipped and ambiguous local times.
var Strict = Resolution{Skipped: RejectSkipped, Ambiguous: RejectAmbiguous}

// Apply resolves local to an instant using v and res.
func (v ValidOffsets) Apply(res Resolution, local chrono.LocalDateTime) (chrono.Instant, error) {
	switch v.kind {
	case Skipped:
		return v.applySkipped(res.Skipped, local)
	case Ambiguous:
		switch res.Ambiguous {
		case Earliest:
			return local.Instant(v.offsets[0]), nil
		case Latest:
			return local.Instant(v.offsets[v.n-1]), nil
		case RejectAmbiguous:
			return chrono.Instant{}, fmt.Errorf("%w: %v is both %v and %v", ErrAmbiguousTime, local, v.offsets[0], v.offsets[1])
		default:
			return chrono.Instant{}, fmt.Errorf("zone: unknown ambiguous policy %d", res.Ambiguous)
		}
	default:
		return local.Instant(v.offsets[0]), nil
	}
}

func (v ValidOffsets) applySkipped(p SkippedPolicy, local chrono.LocalDateTime) (chrono.Instant, error) {
	t := v.transition
	switch p {
	case NextValid:
		return local.Instant(t.before.Offset), nil
	case PreviousValid:
		return local.Instant(t.after.Offset), nil
	case BoundaryStart:
		return t.instant.Minus(chrono.Nanoseconds(1)), nil
	case BoundaryEnd:
		return t.instant, nil
	case BoundaryNearest:
		if local.Sub(t.localStart).Less(t.localEnd.Sub(local)) {
			return t.instant.Minus(chrono.Nanoseconds(1)), nil
		}
		return t.instant, nil
	case RejectSkipped:
		return chrono.Instant{}, fmt.Errorf("%w: %v is in the gap [%v, %v)", ErrSkippedTime, local, t.localStart, t.localEnd)
	default:
		return chrono.Instant{}, fmt.Errorf("zone: unknown skipped policy %d", p)
	}
}
