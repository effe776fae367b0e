// Package posixtz converts POSIX TZ strings, as found in the footer of TZif
// files, into zone.TransitionRule values.
//
// The RFC 8536 extensions are accepted: rule times may be negative and range
// from -167 to 167 hours.
package posixtz

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngrash/go-tzrules/chrono"
	"github.com/ngrash/go-tzrules/zone"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("invalid TZ string")

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
)

// defaultRule applies when a TZ string names daylight saving time but no
// rule, as tzcode does.
const defaultRule = ",M3.2.0,M11.1.0"

// Parse returns the rule described by tz. Rules share cache, which may be nil.
//
// A daylight saving time that lasts the whole year, such as
// "EST5EDT,0/0,J365/25", becomes a rule without transitions at the
// daylight saving offset.
func Parse(tz string, cache *zone.TransitionCache) (*zone.TransitionRule, error) {
	p := parser{s: tz}
	std, dst, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrSyntax, tz, err)
	}
	if dst != nil && permanent(std, *dst) {
		std, dst = zone.StandardTime{Offset: dst.Offset, Designation: dst.Designation}, nil
	}
	r, err := zone.NewTransitionRule(std, dst, cache)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSyntax, tz, err)
	}
	return r, nil
}

// permanent reports whether dst starts at the beginning of January 1 and
// ends at the end of December 31, local standard time.
func permanent(std zone.StandardTime, dst zone.DaylightSavingTime) bool {
	jan1, _ := zone.JulianDay(1, true, chrono.Duration{})
	save := dst.Offset.Duration().Sub(std.Offset.Duration())
	dec31, _ := zone.JulianDay(365, false, chrono.Hours(24).Add(save))
	return dst.Start == jan1 && dst.End == dec31
}

type parser struct {
	s string
}

func (p *parser) parse() (zone.StandardTime, *zone.DaylightSavingTime, error) {
	var std zone.StandardTime
	name, err := p.name()
	if err != nil {
		return std, nil, fmt.Errorf("standard time name: %w", err)
	}
	off, err := p.offset(24)
	if err != nil {
		return std, nil, fmt.Errorf("standard time offset: %w", err)
	}
	// TZ offsets are subtracted from local time to get UTC.
	if std.Offset, err = chrono.ZoneOffsetOfSeconds(-off); err != nil {
		return std, nil, err
	}
	std.Designation = name
	if p.s == "" {
		return std, nil, nil
	}

	dst := zone.DaylightSavingTime{}
	if dst.Designation, err = p.name(); err != nil {
		return std, nil, fmt.Errorf("daylight saving time name: %w", err)
	}
	dstSeconds := std.Offset.TotalSeconds() + secondsPerHour
	if p.s != "" && p.s[0] != ',' && p.s[0] != ';' {
		off, err := p.offset(24)
		if err != nil {
			return std, nil, fmt.Errorf("daylight saving time offset: %w", err)
		}
		dstSeconds = -off
	}
	if dst.Offset, err = chrono.ZoneOffsetOfSeconds(dstSeconds); err != nil {
		return std, nil, err
	}

	if p.s == "" {
		p.s = defaultRule
	}
	// The TZ definition does not mention ';' here but tzcode accepts it.
	if p.s[0] != ',' && p.s[0] != ';' {
		return std, nil, fmt.Errorf("unexpected %q after daylight saving time", p.s)
	}
	p.s = p.s[1:]
	if dst.Start, err = p.rule(); err != nil {
		return std, nil, fmt.Errorf("start rule: %w", err)
	}
	if p.s == "" || p.s[0] != ',' {
		return std, nil, errors.New("missing end rule")
	}
	p.s = p.s[1:]
	if dst.End, err = p.rule(); err != nil {
		return std, nil, fmt.Errorf("end rule: %w", err)
	}
	if p.s != "" {
		return std, nil, fmt.Errorf("trailing %q", p.s)
	}
	return std, &dst, nil
}

// name reads an unquoted alphabetic name of at least three characters or a
// quoted <...> name.
func (p *parser) name() (string, error) {
	if p.s == "" {
		return "", errors.New("missing name")
	}
	if p.s[0] == '<' {
		for i := 1; i < len(p.s); i++ {
			if p.s[i] == '>' {
				name := p.s[1:i]
				p.s = p.s[i+1:]
				if len(name) < 3 {
					return "", fmt.Errorf("name %q shorter than 3 characters", name)
				}
				return name, nil
			}
		}
		return "", errors.New("unterminated quoted name")
	}
	i := 0
	for i < len(p.s) && isAlpha(p.s[i]) {
		i++
	}
	if i < 3 {
		return "", fmt.Errorf("name %q shorter than 3 characters", p.s[:i])
	}
	name := p.s[:i]
	p.s = p.s[i:]
	return name, nil
}

// offset reads [+-]hh[:mm[:ss]] and returns its value in seconds.
func (p *parser) offset(maxHours int) (int, error) {
	neg := false
	if p.s != "" && (p.s[0] == '+' || p.s[0] == '-') {
		neg = p.s[0] == '-'
		p.s = p.s[1:]
	}
	hours, err := p.num(0, maxHours)
	if err != nil {
		return 0, err
	}
	off := hours * secondsPerHour
	for _, unit := range []int{secondsPerMinute, 1} {
		if p.s == "" || p.s[0] != ':' {
			break
		}
		p.s = p.s[1:]
		n, err := p.num(0, 59)
		if err != nil {
			return 0, err
		}
		off += n * unit
	}
	if neg {
		off = -off
	}
	return off, nil
}

// rule reads Jn, n or Mm.w.d with an optional /time.
func (p *parser) rule() (zone.DateRule, error) {
	if p.s == "" {
		return zone.DateRule{}, errors.New("missing rule")
	}
	var build func(at chrono.Duration) (zone.DateRule, error)
	switch p.s[0] {
	case 'J':
		p.s = p.s[1:]
		day, err := p.num(1, 365)
		if err != nil {
			return zone.DateRule{}, err
		}
		build = func(at chrono.Duration) (zone.DateRule, error) { return zone.JulianDay(day, false, at) }
	case 'M':
		p.s = p.s[1:]
		month, err := p.num(1, 12)
		if err != nil {
			return zone.DateRule{}, err
		}
		if err := p.expect('.'); err != nil {
			return zone.DateRule{}, err
		}
		week, err := p.num(1, 5)
		if err != nil {
			return zone.DateRule{}, err
		}
		if err := p.expect('.'); err != nil {
			return zone.DateRule{}, err
		}
		day, err := p.num(0, 6)
		if err != nil {
			return zone.DateRule{}, err
		}
		build = func(at chrono.Duration) (zone.DateRule, error) {
			return zone.MonthWeekDay(time.Month(month), week, time.Weekday(day), at)
		}
	default:
		day, err := p.num(0, 365)
		if err != nil {
			return zone.DateRule{}, err
		}
		build = func(at chrono.Duration) (zone.DateRule, error) { return zone.JulianDay(day+1, true, at) }
	}

	at := chrono.Hours(2)
	if p.s != "" && p.s[0] == '/' {
		p.s = p.s[1:]
		secs, err := p.offset(167)
		if err != nil {
			return zone.DateRule{}, fmt.Errorf("rule time: %w", err)
		}
		at = chrono.Seconds(int64(secs))
	}
	return build(at)
}

func (p *parser) expect(c byte) error {
	if p.s == "" || p.s[0] != c {
		return fmt.Errorf("expected %q", c)
	}
	p.s = p.s[1:]
	return nil
}

// num reads a decimal number in [min, max].
func (p *parser) num(min, max int) (int, error) {
	i, n := 0, 0
	for i < len(p.s) && p.s[i] >= '0' && p.s[i] <= '9' {
		n = n*10 + int(p.s[i]-'0')
		if n > max {
			return 0, fmt.Errorf("number %s... exceeds %d", p.s[:i+1], max)
		}
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("expected number at %q", p.s)
	}
	if n < min {
		return 0, fmt.Errorf("number %d below %d", n, min)
	}
	p.s = p.s[i:]
	return n, nil
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
