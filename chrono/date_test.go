package chrono

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewLocalDate_RoundTrip(t *testing.T) {
	for _, year := range []int{MinYear, -4, 0, 1900, 1970, 2000, 2023, 2024, MaxYear} {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= DaysInMonth(year, month); day++ {
				d, err := NewLocalDate(year, month, day)
				if err != nil {
					t.Fatalf("NewLocalDate(%d, %d, %d) failed: %v", year, month, day, err)
				}
				if d.Year() != year || d.Month() != month || d.Day() != day {
					t.Errorf("NewLocalDate(%d, %d, %d) = %v", year, month, day, d)
				}
			}
		}
	}
}

func TestNewLocalDate_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  FieldError
	}{
		{"April 31", 2025, time.April, 31, FieldError{Field: "day", Value: 31, Min: 1, Max: 30}},
		{"February 30", 2024, time.February, 30, FieldError{Field: "day", Value: 30, Min: 1, Max: 29}},
		{"February 29 in non-leap year", 2023, time.February, 29, FieldError{Field: "day", Value: 29, Min: 1, Max: 28}},
		{"February 29 in 1900", 1900, time.February, 29, FieldError{Field: "day", Value: 29, Min: 1, Max: 28}},
		{"month 13", 2025, 13, 1, FieldError{Field: "month", Value: 13, Min: 1, Max: 12}},
		{"day 0", 2025, time.January, 0, FieldError{Field: "day", Value: 0, Min: 1, Max: 31}},
		{"year too large", MaxYear + 1, time.January, 1, FieldError{Field: "year", Value: MaxYear + 1, Min: MinYear, Max: MaxYear}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLocalDate(c.year, c.month, c.day)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("NewLocalDate() error = %v, want *FieldError", err)
			}
			if diff := cmp.Diff(c.want, *fe); diff != "" {
				t.Errorf("NewLocalDate() error mismatch (-want +got):\n%s", diff)
			}
			if !errors.Is(err, ErrFieldRange) {
				t.Errorf("errors.Is(%v, ErrFieldRange) = false", err)
			}
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	_, err := NewLocalDate(2025, time.April, 31)
	if got, want := err.Error(), "invalid day 31: valid range 1...30"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLocalDateOfYearDay(t *testing.T) {
	for _, year := range []int{-400, -1, 1900, 2000, 2023, 2024} {
		n := DaysInYear(year)
		month, day := time.January, 0
		for ordinal := 1; ordinal <= n; ordinal++ {
			// Walk the calendar by hand alongside the ordinal.
			day++
			if day > DaysInMonth(year, month) {
				month++
				day = 1
			}
			got, err := LocalDateOfYearDay(year, ordinal)
			if err != nil {
				t.Fatalf("LocalDateOfYearDay(%d, %d) failed: %v", year, ordinal, err)
			}
			if want := MustLocalDate(year, month, day); got != want {
				t.Errorf("LocalDateOfYearDay(%d, %d) = %v, want %v", year, ordinal, got, want)
			}
			if got.YearDay() != ordinal {
				t.Errorf("%v.YearDay() = %d, want %d", got, got.YearDay(), ordinal)
			}
		}
		for _, bad := range []int{0, n + 1} {
			if _, err := LocalDateOfYearDay(year, bad); !errors.Is(err, ErrFieldRange) {
				t.Errorf("LocalDateOfYearDay(%d, %d) error = %v, want ErrFieldRange", year, bad, err)
			}
		}
	}
}

func TestLocalDate_EpochDay(t *testing.T) {
	cases := []struct {
		date LocalDate
		want int64
	}{
		{MustLocalDate(1970, time.January, 1), 0},
		{MustLocalDate(1969, time.December, 31), -1},
		{MustLocalDate(2000, time.March, 1), 11017},
		{MustLocalDate(1600, time.January, 1), -135140},
	}
	for _, c := range cases {
		if got := c.date.EpochDay(); got != c.want {
			t.Errorf("%v.EpochDay() = %d, want %d", c.date, got, c.want)
		}
		if got := LocalDateOfEpochDay(c.want); got != c.date {
			t.Errorf("LocalDateOfEpochDay(%d) = %v, want %v", c.want, got, c.date)
		}
	}

	start := MustLocalDate(1999, time.December, 1)
	for n := int64(0); n < 1000; n++ {
		d := start.AddDays(n)
		if got := d.EpochDay() - start.EpochDay(); got != n {
			t.Fatalf("%v: epoch day distance = %d, want %d", d, got, n)
		}
	}
}

func TestLocalDate_Weekday(t *testing.T) {
	cases := []struct {
		date LocalDate
		want time.Weekday
	}{
		{MustLocalDate(1970, time.January, 1), time.Thursday},
		{MustLocalDate(2025, time.March, 9), time.Sunday},
		{MustLocalDate(2024, time.February, 29), time.Thursday},
		{MustLocalDate(1900, time.January, 1), time.Monday},
	}
	for _, c := range cases {
		if got := c.date.Weekday(); got != c.want {
			t.Errorf("%v.Weekday() = %v, want %v", c.date, got, c.want)
		}
	}
}

func TestLocalDate_Compare(t *testing.T) {
	a := MustLocalDate(2024, time.December, 31)
	b := MustLocalDate(2025, time.January, 1)
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Errorf("ordering of %v and %v is wrong", a, b)
	}
}

func TestLocalDate_String(t *testing.T) {
	cases := []struct {
		date LocalDate
		want string
	}{
		{MustLocalDate(2025, time.March, 9), "2025-03-09"},
		{MustLocalDate(-44, time.March, 15), "-0044-03-15"},
		{MustLocalDate(12345, time.January, 2), "+12345-01-02"},
	}
	for _, c := range cases {
		if got := c.date.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
