package zone

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ngrash/go-tzrules/chrono"
)

// StandardTime is the standard half of a TransitionRule.
type StandardTime struct {
	Offset      chrono.ZoneOffset
	Designation string
}

// DaylightSavingTime is the daylight saving half of a TransitionRule.
// Start and End are evaluated in the local time in effect before each
// transition: Start in standard time, End in daylight saving time.
type DaylightSavingTime struct {
	Offset      chrono.ZoneOffset
	Designation string
	Start, End  DateRule
}

// TransitionRule projects transitions into any year from a recurring
// annual rule. It is used once historical transitions run out.
type TransitionRule struct {
	std   StandardTime
	dst   DaylightSavingTime
	isDST bool
	cache *TransitionCache
}

// NewTransitionRule returns a rule with standard time std and optional
// daylight saving time dst. Projections are memoized in cache; a nil cache
// gives the rule a private one.
func NewTransitionRule(std StandardTime, dst *DaylightSavingTime, cache *TransitionCache) (*TransitionRule, error) {
	r := &TransitionRule{std: std, cache: cache}
	if dst != nil {
		if dst.Offset == std.Offset {
			return nil, fmt.Errorf("%w: daylight saving offset %v", ErrEqualOffsets, dst.Offset)
		}
		if dst.Start.kind == 0 || dst.End.kind == 0 {
			return nil, fmt.Errorf("zone: daylight saving time %q lacks start or end rule", dst.Designation)
		}
		r.dst, r.isDST = *dst, true
	}
	if r.cache == nil {
		r.cache = NewTransitionCache()
	}
	return r, nil
}

// Standard returns the standard time of the rule.
func (r *TransitionRule) Standard() StandardTime { return r.std }

// DaylightSaving returns the daylight saving time of the rule, if any.
func (r *TransitionRule) DaylightSaving() (DaylightSavingTime, bool) { return r.dst, r.isDST }

func (r *TransitionRule) stdPeriod() Period { return StandardPeriod(r.std.Offset, r.std.Designation) }

func (r *TransitionRule) dstPeriod() Period {
	return DaylightPeriod(r.dst.Offset, r.std.Offset, r.dst.Designation)
}

// Transitions returns the start and end transitions of daylight saving time
// in year. The boolean is false for rules without daylight saving time.
func (r *TransitionRule) Transitions(year int) (start, end Transition, ok bool) {
	if !r.isDST {
		return Transition{}, Transition{}, false
	}
	pair := r.cache.load(cacheKey{year: year, std: r.std, dst: r.dst}, func() [2]Transition {
		return r.project(year)
	})
	return pair[0], pair[1], true
}

func (r *TransitionRule) project(year int) [2]Transition {
	std, dst := r.stdPeriod(), r.dstPeriod()
	start := r.dst.Start.DateTime(year).Instant(r.std.Offset)
	end := r.dst.End.DateTime(year).Instant(r.dst.Offset)
	return [2]Transition{
		newTransition(start, std, dst),
		newTransition(end, dst, std),
	}
}

// around returns the transitions of the years surrounding year, ordered by
// instant. Both hemispheres are handled: the start of daylight saving time
// need not precede its end within a year.
func (r *TransitionRule) around(year int) []Transition {
	// Rule times reach up to a week past either end of a year.
	year = max(chrono.MinYear+2, min(chrono.MaxYear-2, year))
	ts := make([]Transition, 0, 6)
	for y := year - 1; y <= year+1; y++ {
		start, end, _ := r.Transitions(y)
		ts = append(ts, start, end)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].instant.Before(ts[j].instant) })
	return ts
}

func (r *TransitionRule) yearOf(at chrono.Instant) int {
	if lo := chrono.MinInstant.Add(chrono.Days(1)); at.Before(lo) {
		at = lo
	} else if hi := chrono.MaxInstant.Minus(chrono.Days(1)); at.After(hi) {
		at = hi
	}
	return chrono.LocalAt(at, r.std.Offset).Date().Year()
}

// current returns the last projected transition at or before at.
func (r *TransitionRule) current(at chrono.Instant) Transition {
	ts := r.around(r.yearOf(at))
	i := sort.Search(len(ts), func(i int) bool { return ts[i].instant.After(at) })
	if i == 0 {
		return ts[0]
	}
	return ts[i-1]
}

func (r *TransitionRule) period(at chrono.Instant) Period {
	if !r.isDST {
		return r.stdPeriod()
	}
	t := r.current(at)
	if t.instant.After(at) {
		return t.before
	}
	return t.after
}

func (r *TransitionRule) IsFixedOffset() bool { return !r.isDST }

func (r *TransitionRule) StandardOffset(chrono.Instant) chrono.ZoneOffset { return r.std.Offset }

func (r *TransitionRule) DaylightSavingTime(at chrono.Instant) chrono.Duration {
	return r.Offset(at).Duration().Sub(r.std.Offset.Duration()).Abs()
}

func (r *TransitionRule) IsDaylightSavingTime(at chrono.Instant) bool {
	return r.Offset(at) != r.std.Offset
}

func (r *TransitionRule) Offset(at chrono.Instant) chrono.ZoneOffset { return r.period(at).Offset }

func (r *TransitionRule) Designation(at chrono.Instant) string { return r.period(at).Designation }

func (r *TransitionRule) OffsetForLocal(local chrono.LocalDateTime) chrono.ZoneOffset {
	return bestEffort(r.ValidOffsets(local))
}

func (r *TransitionRule) ValidOffsets(local chrono.LocalDateTime) ValidOffsets {
	if !r.isDST {
		return NormalOffsets(r.std.Offset)
	}
	ts := r.around(local.Date().Year())
	for _, t := range ts {
		if local.Before(t.localEnd) {
			return t.ValidOffsets(local)
		}
	}
	return NormalOffsets(ts[len(ts)-1].after.Offset)
}

func (r *TransitionRule) IsValidOffset(offset chrono.ZoneOffset, local chrono.LocalDateTime) bool {
	return r.ValidOffsets(local).Contains(offset)
}

func (r *TransitionRule) ApplicableTransition(local chrono.LocalDateTime) (Transition, bool) {
	if !r.isDST {
		return Transition{}, false
	}
	for _, t := range r.around(local.Date().Year()) {
		if t.Contains(local) {
			return t, true
		}
	}
	return Transition{}, false
}

func (r *TransitionRule) NextTransition(after chrono.Instant) (Transition, bool) {
	if !r.isDST {
		return Transition{}, false
	}
	year := r.yearOf(after)
	for _, y := range []int{year, year + 2} {
		for _, t := range r.around(y) {
			if t.instant.After(after) {
				return t, true
			}
		}
	}
	return Transition{}, false
}

func (r *TransitionRule) PriorTransition(before chrono.Instant) (Transition, bool) {
	if !r.isDST {
		return Transition{}, false
	}
	year := r.yearOf(before)
	for _, y := range []int{year, year - 2} {
		ts := r.around(y)
		for i := len(ts) - 1; i >= 0; i-- {
			if ts[i].instant.Before(before) {
				return ts[i], true
			}
		}
	}
	return Transition{}, false
}

func (r *TransitionRule) String() string {
	if !r.isDST {
		return fmt.Sprintf("%s%v", r.std.Designation, r.std.Offset)
	}
	return fmt.Sprintf("%s%v %s%v %v %v", r.std.Designation, r.std.Offset,
		r.dst.Designation, r.dst.Offset, r.dst.Start, r.dst.End)
}

type cacheKey struct {
	year int
	std  StandardTime
	dst  DaylightSavingTime
}

// TransitionCache memoizes projected transitions by year and rule.
// Entries are never invalidated; a cache may be shared by many rules.
type TransitionCache struct {
	mu      sync.Mutex
	entries map[cacheKey][2]Transition
}

// NewTransitionCache returns an empty cache.
func NewTransitionCache() *TransitionCache {
	return &TransitionCache{entries: make(map[cacheKey][2]Transition)}
}

// Len returns the number of memoized years across all rules.
func (c *TransitionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TransitionCache) load(k cacheKey, compute func() [2]Transition) [2]Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[k]; ok {
		return v
	}
	v := compute()
	c.entries[k] = v
	return v
}
