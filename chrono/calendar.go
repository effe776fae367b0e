package chrono

import "time"

const (
	// MinYear is the earliest supported year.
	MinYear = -999_999_999
	// MaxYear is the latest supported year.
	MaxYear = 999_999_999
)

// daysBefore[m] is the number of days in a non-leap year before month m+1.
var daysBefore = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// leapDaysBefore is daysBefore for leap years.
var leapDaysBefore = [...]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	if month == time.April || month == time.June || month == time.September || month == time.November {
		return 30
	}
	return 31
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// cumulativeDays returns the day-count table for year.
func cumulativeDays(year int) *[13]int {
	if IsLeapYear(year) {
		return &leapDaysBefore
	}
	return &daysBefore
}

// epochDay returns the number of days from 1970-01-01 to the given date.
// It shifts the year to start in March so that the leap day is the last
// day of the shifted year, then counts whole 400-year eras.
func epochDay(year int, month time.Month, day int) int64 {
	y := int64(year)
	m := int64(month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civil is the inverse of epochDay.
func civil(days int64) (year int, month time.Month, day int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), time.Month(m), int(d)
}

// weekday returns the day of the week for a day count since 1970-01-01,
// which was a Thursday.
func weekday(days int64) time.Weekday {
	return time.Weekday(floorMod(days+4, 7))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
