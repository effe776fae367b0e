package zone

import (
	"fmt"
	"time"

	"github.com/ngrash/go-tzrules/chrono"
)

type dateRuleKind uint8

const (
	monthWeekDay dateRuleKind = iota + 1
	julianDay
)

// DateRule names a local date-time in any year, such as "the second Sunday
// of March at 02:00". DateRule values are comparable.
type DateRule struct {
	kind    dateRuleKind
	month   time.Month
	week    int
	weekday time.Weekday
	day     int
	leap    bool
	at      chrono.Duration
}

// MaxRuleTime bounds the time of day of a DateRule.
var MaxRuleTime = chrono.Hours(167)

// MonthWeekDay returns the rule for the week-th weekday of month, at the
// given time after local midnight. Week 5 means the last such weekday.
func MonthWeekDay(month time.Month, week int, weekday time.Weekday, at chrono.Duration) (DateRule, error) {
	if month < time.January || month > time.December {
		return DateRule{}, &chrono.FieldError{Field: "month", Value: int64(month), Min: 1, Max: 12}
	}
	if week < 1 || week > 5 {
		return DateRule{}, &chrono.FieldError{Field: "week", Value: int64(week), Min: 1, Max: 5}
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return DateRule{}, &chrono.FieldError{Field: "weekday", Value: int64(weekday), Min: 0, Max: 6}
	}
	if err := checkRuleTime(at); err != nil {
		return DateRule{}, err
	}
	return DateRule{kind: monthWeekDay, month: month, week: week, weekday: weekday, at: at}, nil
}

// JulianDay returns the rule for a fixed 1-based day of the year.
//
// When leap is false, February 29 is never counted: day 60 is always
// March 1 and the valid range is 1 to 365. When leap is true, days are
// counted plainly and the range is 1 to 366.
func JulianDay(day int, leap bool, at chrono.Duration) (DateRule, error) {
	max := 365
	if leap {
		max = 366
	}
	if day < 1 || day > max {
		return DateRule{}, &chrono.FieldError{Field: "day", Value: int64(day), Min: 1, Max: int64(max)}
	}
	if err := checkRuleTime(at); err != nil {
		return DateRule{}, err
	}
	return DateRule{kind: julianDay, day: day, leap: leap, at: at}, nil
}

func checkRuleTime(at chrono.Duration) error {
	if at.Abs().Compare(MaxRuleTime) > 0 {
		return fmt.Errorf("zone: rule time %v exceeds %v", at, MaxRuleTime)
	}
	return nil
}

// Date returns the date the rule selects in year.
func (r DateRule) Date(year int) chrono.LocalDate {
	switch r.kind {
	case monthWeekDay:
		first := chrono.MustLocalDate(year, r.month, 1)
		day := 1 + int(r.weekday-first.Weekday()+7)%7 + 7*(r.week-1)
		for day > first.LengthOfMonth() {
			day -= 7
		}
		return chrono.MustLocalDate(year, r.month, day)
	case julianDay:
		day := r.day
		if !r.leap && day >= 60 && chrono.IsLeapYear(year) {
			day++
		}
		return chrono.MustLocalDate(year, time.January, 1).AddDays(int64(day - 1))
	default:
		panic("zone: zero DateRule")
	}
}

// DateTime returns the local date-time the rule selects in year.
func (r DateRule) DateTime(year int) chrono.LocalDateTime {
	return r.Date(year).AtStartOfDay().Add(r.at)
}

// Equal reports whether r and s are the same rule.
func (r DateRule) Equal(s DateRule) bool { return r == s }

// Time returns the time after local midnight.
func (r DateRule) Time() chrono.Duration { return r.at }

func (r DateRule) String() string {
	switch r.kind {
	case monthWeekDay:
		return fmt.Sprintf("M%d.%d.%d+%v", r.month, r.week, r.weekday, r.at)
	case julianDay:
		if r.leap {
			return fmt.Sprintf("%d+%v", r.day-1, r.at)
		}
		return fmt.Sprintf("J%d+%v", r.day, r.at)
	default:
		return "<zero DateRule>"
	}
}
