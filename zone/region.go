package zone

import (
	"fmt"
	"sort"

	"github.com/ngrash/go-tzrules/chrono"
)

// RegionRules replay historical transitions of a region and project
// later ones with an optional TransitionRule.
//
// A query is projected when it lies strictly after the last transition's
// instant and the last period change, or for local date-times at or after
// the last transition's local end. Projected
// queries go to the tail rule, or to the final period when there is none.
type RegionRules struct {
	initial     Period
	final       Period
	transitions []Transition
	tail        *TransitionRule
	changes     []change
}

// change is a period taking effect without a change of UTC offset.
type change struct {
	at     chrono.Instant
	period Period
}

var _ Rules = (*RegionRules)(nil)

// NewRegionRules returns rules starting in initial, changing at each of
// transitions, and ending in final or following tail.
//
// changes holds periods that take effect without changing the UTC offset,
// keyed by the instant they take effect: a new designation, or a switch
// between standard and daylight saving time. Their Offset is ignored.
// A change at the same instant as a transition loses to the transition.
//
// Transitions must be strictly increasing by instant and by both local
// boundaries; otherwise the error wraps ErrTransitionOrder.
func NewRegionRules(initial, final Period, transitions []Transition, tail *TransitionRule, changes map[chrono.Instant]Period) (*RegionRules, error) {
	for i := 1; i < len(transitions); i++ {
		prev, next := transitions[i-1], transitions[i]
		switch {
		case !prev.instant.Before(next.instant):
			return nil, fmt.Errorf("%w: transition %d at %v does not follow %v", ErrTransitionOrder, i, next.instant, prev.instant)
		case !prev.localStart.Before(next.localStart):
			return nil, fmt.Errorf("%w: transition %d starts at local %v, not after %v", ErrTransitionOrder, i, next.localStart, prev.localStart)
		case !prev.localEnd.Before(next.localEnd):
			return nil, fmt.Errorf("%w: transition %d ends at local %v, not after %v", ErrTransitionOrder, i, next.localEnd, prev.localEnd)
		}
	}

	sorted := make([]change, 0, len(changes))
	for at, p := range changes {
		sorted = append(sorted, change{at: at, period: p})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].at.Before(sorted[j].at) })

	return &RegionRules{
		initial:     initial,
		final:       final,
		transitions: append([]Transition(nil), transitions...),
		tail:        tail,
		changes:     sorted,
	}, nil
}

// Initial returns the period before the first transition.
func (r *RegionRules) Initial() Period { return r.initial }

// Final returns the period after the last transition when no tail rule exists.
func (r *RegionRules) Final() Period { return r.final }

// Transitions returns a copy of the historical transitions.
func (r *RegionRules) Transitions() []Transition {
	return append([]Transition(nil), r.transitions...)
}

// TransitionRule returns the tail rule, or nil.
func (r *RegionRules) TransitionRule() *TransitionRule { return r.tail }

func (r *RegionRules) last() (Transition, bool) {
	if len(r.transitions) == 0 {
		return Transition{}, false
	}
	return r.transitions[len(r.transitions)-1], true
}

func (r *RegionRules) projectedInstant(at chrono.Instant) bool {
	if n := len(r.changes); n > 0 && !at.After(r.changes[n-1].at) {
		return false
	}
	last, ok := r.last()
	return !ok || at.After(last.instant)
}

func (r *RegionRules) projectedLocal(local chrono.LocalDateTime) bool {
	last, ok := r.last()
	return !ok || !local.Before(last.localEnd)
}

// index returns the index of the last transition at or before at, or -1.
func (r *RegionRules) index(at chrono.Instant) int {
	return sort.Search(len(r.transitions), func(i int) bool {
		return r.transitions[i].instant.After(at)
	}) - 1
}

// changeAt returns the period of the last change at or before at, provided
// no transition took effect at or after it.
func (r *RegionRules) changeAt(at chrono.Instant) (Period, bool) {
	j := sort.Search(len(r.changes), func(j int) bool { return r.changes[j].at.After(at) }) - 1
	if j < 0 {
		return Period{}, false
	}
	c := r.changes[j]
	if i := r.index(at); i >= 0 && !r.transitions[i].instant.Before(c.at) {
		return Period{}, false
	}
	return c.period, true
}

// localIndex returns the index of the last transition whose window starts
// at or before local, or -1.
func (r *RegionRules) localIndex(local chrono.LocalDateTime) int {
	return sort.Search(len(r.transitions), func(i int) bool {
		return r.transitions[i].localStart.After(local)
	}) - 1
}

func (r *RegionRules) IsFixedOffset() bool {
	return len(r.transitions) == 0 && (r.tail == nil || r.tail.IsFixedOffset())
}

func (r *RegionRules) StandardOffset(at chrono.Instant) chrono.ZoneOffset {
	i := r.index(at)
	if r.projectedInstant(at) {
		if r.tail != nil {
			return r.tail.StandardOffset(at)
		}
		if r.final.IsStandardTime {
			return r.final.Offset
		}
		i = len(r.transitions) - 1
	}
	if p, ok := r.changeAt(at); ok {
		off := r.Offset(at)
		if p.IsStandardTime {
			return off
		}
		if !p.DaylightSaving.IsZero() {
			return offsetOf(off.Duration().Sub(p.DaylightSaving))
		}
	}
	if i < 0 {
		if r.initial.IsStandardTime {
			return r.initial.Offset
		}
		for _, t := range r.transitions {
			if t.after.IsStandardTime {
				return t.after.Offset
			}
		}
		return r.initial.standardOffset()
	}
	for j := i; j >= 0; j-- {
		if t := r.transitions[j]; t.after.IsStandardTime {
			return t.after.Offset
		}
	}
	if r.initial.IsStandardTime {
		return r.initial.Offset
	}
	return r.initial.standardOffset()
}

func (r *RegionRules) DaylightSavingTime(at chrono.Instant) chrono.Duration {
	if r.tail != nil && r.projectedInstant(at) {
		return r.tail.DaylightSavingTime(at)
	}
	return r.Offset(at).Duration().Sub(r.StandardOffset(at).Duration()).Abs()
}

func (r *RegionRules) IsDaylightSavingTime(at chrono.Instant) bool {
	return !r.DaylightSavingTime(at).IsZero()
}

func (r *RegionRules) Offset(at chrono.Instant) chrono.ZoneOffset {
	if r.projectedInstant(at) {
		if r.tail != nil {
			return r.tail.Offset(at)
		}
		if len(r.transitions) == 0 {
			return r.initial.Offset
		}
		return r.final.Offset
	}
	if i := r.index(at); i >= 0 {
		return r.transitions[i].after.Offset
	}
	return r.initial.Offset
}

func (r *RegionRules) OffsetForLocal(local chrono.LocalDateTime) chrono.ZoneOffset {
	return bestEffort(r.ValidOffsets(local))
}

func (r *RegionRules) ValidOffsets(local chrono.LocalDateTime) ValidOffsets {
	if r.projectedLocal(local) {
		if r.tail != nil {
			return r.tail.ValidOffsets(local)
		}
		if len(r.transitions) == 0 {
			return NormalOffsets(r.initial.Offset)
		}
		return NormalOffsets(r.final.Offset)
	}
	if i := r.localIndex(local); i >= 0 {
		return r.transitions[i].ValidOffsets(local)
	}
	return NormalOffsets(r.initial.Offset)
}

func (r *RegionRules) IsValidOffset(offset chrono.ZoneOffset, local chrono.LocalDateTime) bool {
	return r.ValidOffsets(local).Contains(offset)
}

func (r *RegionRules) ApplicableTransition(local chrono.LocalDateTime) (Transition, bool) {
	if r.projectedLocal(local) {
		if r.tail != nil {
			return r.tail.ApplicableTransition(local)
		}
		return Transition{}, false
	}
	if i := r.localIndex(local); i >= 0 && r.transitions[i].Contains(local) {
		return r.transitions[i], true
	}
	return Transition{}, false
}

func (r *RegionRules) NextTransition(after chrono.Instant) (Transition, bool) {
	if i := r.index(after) + 1; i < len(r.transitions) {
		return r.transitions[i], true
	}
	if r.tail != nil {
		return r.tail.NextTransition(after)
	}
	return Transition{}, false
}

func (r *RegionRules) PriorTransition(before chrono.Instant) (Transition, bool) {
	last, ok := r.last()
	if r.tail != nil && (!ok || before.After(last.instant)) {
		if t, found := r.tail.PriorTransition(before); found && (!ok || t.instant.After(last.instant)) {
			return t, true
		}
	}
	i := sort.Search(len(r.transitions), func(i int) bool {
		return !r.transitions[i].instant.Before(before)
	}) - 1
	if i >= 0 {
		return r.transitions[i], true
	}
	return Transition{}, false
}

// Designation returns the abbreviation in effect at an instant. Of the last
// transition and the last period change at or before at, the later one
// wins.
func (r *RegionRules) Designation(at chrono.Instant) string {
	if r.tail != nil && r.projectedInstant(at) {
		return r.tail.Designation(at)
	}
	name := r.initial.Designation
	if p, ok := r.changeAt(at); ok {
		name = p.Designation
	} else if i := r.index(at); i >= 0 {
		name = r.transitions[i].after.Designation
	}
	if name == "" {
		return r.Offset(at).String()
	}
	return name
}
