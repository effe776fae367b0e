package tzdb

import (
	"fmt"

	"github.com/ngrash/go-tzrules/chrono"
	"github.com/ngrash/go-tzrules/internal/posixtz"
	"github.com/ngrash/go-tzrules/tzif"
	"github.com/ngrash/go-tzrules/zone"
)

// Rules converts decoded TZif data into region rules. The footer, if any,
// becomes the tail rule and shares cache.
//
// Time type 0 describes local time before the first transition. A
// transition that keeps the UTC offset is recorded as a period change
// instead of as a transition, so a new designation or a switch between
// standard and daylight saving time survives.
func Rules(d tzif.Data, cache *zone.TransitionCache) (*zone.RegionRules, error) {
	if err := tzif.Validate(d); err != nil {
		return nil, err
	}

	periods := make([]zone.Period, len(d.LocalTimeTypes))
	lastStd, stdKnown := chrono.UTC, false
	for i, t := range d.LocalTimeTypes {
		off, err := chrono.ZoneOffsetOfSeconds(int(t.Utoff))
		if err != nil {
			return nil, fmt.Errorf("local time type %d: %w", i, err)
		}
		name, err := d.Designation(t.Idx)
		if err != nil {
			return nil, fmt.Errorf("local time type %d: %w", i, err)
		}
		periods[i] = zone.Period{Offset: off, Designation: name}
		if !t.Dst {
			periods[i] = zone.StandardPeriod(off, name)
			lastStd, stdKnown = off, true
		}
	}
	// A daylight type measures its saving against the standard offset in
	// effect when it is used.
	period := func(typ int, std chrono.ZoneOffset) zone.Period {
		if p := periods[typ]; d.LocalTimeTypes[typ].Dst {
			return zone.DaylightPeriod(p.Offset, std, p.Designation)
		}
		return periods[typ]
	}

	current := lastStd
	if !d.LocalTimeTypes[0].Dst || !stdKnown {
		current = periods[0].Offset
	}
	initial := period(0, current)
	before := initial

	var (
		transitions []zone.Transition
		changes     = make(map[chrono.Instant]zone.Period)
	)
	for i, at := range d.TransitionTimes {
		typ := int(d.TransitionTypes[i])
		if !d.LocalTimeTypes[typ].Dst {
			current = periods[typ].Offset
		}
		after := period(typ, current)
		instant := chrono.Unix(at, 0)
		if after.Offset == before.Offset {
			if after != before {
				changes[instant] = after
			}
			before = after
			continue
		}
		t, err := zone.NewTransition(instant, before, after)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		transitions = append(transitions, t)
		before = after
	}

	var tail *zone.TransitionRule
	if d.Footer != "" {
		r, err := posixtz.Parse(d.Footer, cache)
		if err != nil {
			return nil, fmt.Errorf("footer: %w", err)
		}
		tail = r
	}
	return zone.NewRegionRules(initial, before, transitions, tail, changes)
}
