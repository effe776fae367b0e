package chrono

import (
	"fmt"
	"math"
	"time"
)

// LocalDate is a date without a time zone.
type LocalDate struct {
	year  int
	month time.Month
	day   int
}

// NewLocalDate returns the date year-month-day.
func NewLocalDate(year int, month time.Month, day int) (LocalDate, error) {
	if err := checkField("year", int64(year), MinYear, MaxYear); err != nil {
		return LocalDate{}, err
	}
	if err := checkField("month", int64(month), 1, 12); err != nil {
		return LocalDate{}, err
	}
	if err := checkField("day", int64(day), 1, int64(DaysInMonth(year, month))); err != nil {
		return LocalDate{}, err
	}
	return LocalDate{year: year, month: month, day: day}, nil
}

// LocalDateOfYearDay returns the ordinalDay-th day of year, counting from 1.
func LocalDateOfYearDay(year, ordinalDay int) (LocalDate, error) {
	if err := checkField("year", int64(year), MinYear, MaxYear); err != nil {
		return LocalDate{}, err
	}
	if err := checkField("ordinalDay", int64(ordinalDay), 1, int64(DaysInYear(year))); err != nil {
		return LocalDate{}, err
	}
	table := cumulativeDays(year)
	m := 1
	for ordinalDay > table[m] {
		m++
	}
	return LocalDate{year: year, month: time.Month(m), day: ordinalDay - table[m-1]}, nil
}

// Epoch days of the first and last supported dates.
var (
	minEpochDay = epochDay(MinYear, time.January, 1)
	maxEpochDay = epochDay(MaxYear, time.December, 31)
)

// LocalDateOfEpochDay returns the date n days after 1970-01-01.
// It panics if that date falls outside [MinYear, MaxYear].
func LocalDateOfEpochDay(n int64) LocalDate {
	d, err := dateOfEpochDay(n)
	if err != nil {
		panic(err)
	}
	return d
}

func dateOfEpochDay(n int64) (LocalDate, error) {
	if n < minEpochDay || n > maxEpochDay {
		y, _, _ := civil(min(n, math.MaxInt64-719468))
		return LocalDate{}, &FieldError{Field: "year", Value: int64(y), Min: MinYear, Max: MaxYear}
	}
	y, m, d := civil(n)
	return LocalDate{year: y, month: m, day: d}, nil
}

// MustLocalDate is like NewLocalDate but panics on invalid input.
func MustLocalDate(year int, month time.Month, day int) LocalDate {
	d, err := NewLocalDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d LocalDate) Year() int          { return d.year }
func (d LocalDate) Month() time.Month  { return d.month }
func (d LocalDate) Day() int           { return d.day }
func (d LocalDate) IsLeapYear() bool   { return IsLeapYear(d.year) }
func (d LocalDate) LengthOfMonth() int { return DaysInMonth(d.year, d.month) }

// YearDay returns the day of the year, counting from 1.
func (d LocalDate) YearDay() int {
	return cumulativeDays(d.year)[d.month-1] + d.day
}

// EpochDay returns the number of days since 1970-01-01.
func (d LocalDate) EpochDay() int64 {
	return epochDay(d.year, d.month, d.day)
}

// Weekday returns the day of the week.
func (d LocalDate) Weekday() time.Weekday {
	return weekday(d.EpochDay())
}

// AddDays returns the date n days later (earlier if n is negative).
// It panics if the result falls outside [MinYear, MaxYear].
func (d LocalDate) AddDays(n int64) LocalDate {
	if n == 0 {
		return d
	}
	e := d.EpochDay()
	if n > maxEpochDay-e || n < minEpochDay-e {
		panic(fmt.Sprintf("chrono: %v plus %d days is out of range", d, n))
	}
	return LocalDateOfEpochDay(e + n)
}

// AtStartOfDay returns midnight at the start of d.
func (d LocalDate) AtStartOfDay() LocalDateTime {
	return LocalDateTime{date: d}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after e. Fields are compared in year, month, day order.
func (d LocalDate) Compare(e LocalDate) int {
	switch {
	case d.year != e.year:
		return cmpInt(d.year, e.year)
	case d.month != e.month:
		return cmpInt(int(d.month), int(e.month))
	}
	return cmpInt(d.day, e.day)
}

func (d LocalDate) Before(e LocalDate) bool { return d.Compare(e) < 0 }
func (d LocalDate) After(e LocalDate) bool  { return d.Compare(e) > 0 }
func (d LocalDate) Equal(e LocalDate) bool  { return d == e }

// String formats d as YYYY-MM-DD. Years outside 0..9999 carry a sign.
func (d LocalDate) String() string {
	if d.year >= 0 && d.year <= 9999 {
		return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
	}
	return fmt.Sprintf("%+05d-%02d-%02d", d.year, int(d.month), d.day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
