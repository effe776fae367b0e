package tzif

import (
	"errors"
	"fmt"
)

// Validate checks the structural rules of RFC 8536 section 3 and reports
// every violation found, joined.
func Validate(d Data) error {
	var errs []error
	switch d.Version {
	case V1, V2, V3, V4:
	default:
		errs = append(errs, fmt.Errorf("invalid version: %v", d.Version))
	}

	typecnt := len(d.LocalTimeTypes)
	if typecnt == 0 {
		errs = append(errs, errors.New("invalid typecnt: must not be zero"))
	}
	if typecnt > 256 {
		errs = append(errs, fmt.Errorf("invalid typecnt (%d): must not exceed 256", typecnt))
	}
	if n := len(d.UTLocalIndicators); n != 0 && n != typecnt {
		errs = append(errs, fmt.Errorf("invalid isutcnt (%d): must be 0 or equal to typecnt (%d)", n, typecnt))
	}
	if n := len(d.StandardWallIndicators); n != 0 && n != typecnt {
		errs = append(errs, fmt.Errorf("invalid isstdcnt (%d): must be 0 or equal to typecnt (%d)", n, typecnt))
	}
	for i, ut := range d.UTLocalIndicators {
		if ut && i < len(d.StandardWallIndicators) && !d.StandardWallIndicators[i] {
			errs = append(errs, fmt.Errorf("invalid indicators for type %d: UT time must also be standard time", i))
		}
	}

	if times, types := len(d.TransitionTimes), len(d.TransitionTypes); times != types {
		errs = append(errs, fmt.Errorf("inconsistent transitions: transition times = %d, transition types = %d", times, types))
	}
	for i := 1; i < len(d.TransitionTimes); i++ {
		if d.TransitionTimes[i] <= d.TransitionTimes[i-1] {
			errs = append(errs, fmt.Errorf("transition time %d (%d) is not after %d", i, d.TransitionTimes[i], d.TransitionTimes[i-1]))
		}
	}
	for i, typ := range d.TransitionTypes {
		if int(typ) >= typecnt {
			errs = append(errs, fmt.Errorf("transition %d: type %d out of range (typecnt %d)", i, typ, typecnt))
		}
	}

	if len(d.Designations) == 0 {
		errs = append(errs, errors.New("invalid charcnt: must not be zero"))
	} else if d.Designations[len(d.Designations)-1] != 0 {
		errs = append(errs, errors.New("invalid time zone designations: missing null terminator"))
	}
	for i, t := range d.LocalTimeTypes {
		if t.Utoff == -1<<31 {
			errs = append(errs, fmt.Errorf("local time type %d: utoff must not be -2**31", i))
		}
		if _, err := d.Designation(t.Idx); err != nil {
			errs = append(errs, fmt.Errorf("local time type %d: %w", i, err))
		}
	}

	for i := 1; i < len(d.LeapSeconds); i++ {
		if d.LeapSeconds[i].Occur <= d.LeapSeconds[i-1].Occur {
			errs = append(errs, fmt.Errorf("leap second %d does not follow its predecessor", i))
		}
	}

	if d.Version == V1 && d.Footer != "" {
		errs = append(errs, errors.New("v1 files must not have a footer"))
	}
	return errors.Join(errs...)
}
