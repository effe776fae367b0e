package chrono

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewZoneOffset(t *testing.T) {
	cases := []struct {
		hours, minutes, seconds int
		want                    int
		str                     string
	}{
		{0, 0, 0, 0, "Z"},
		{5, 30, 0, 19800, "+05:30"},
		{-5, 0, 0, -18000, "-05:00"},
		{0, -30, -15, -1815, "-00:30:15"},
		{0, 0, 45, 45, "+00:00:45"},
		{18, 0, 0, 64800, "+18:00"},
		{-18, 0, 0, -64800, "-18:00"},
	}
	for _, c := range cases {
		got, err := NewZoneOffset(c.hours, c.minutes, c.seconds)
		if err != nil {
			t.Fatalf("NewZoneOffset(%d, %d, %d) failed: %v", c.hours, c.minutes, c.seconds, err)
		}
		if got.TotalSeconds() != c.want {
			t.Errorf("NewZoneOffset(%d, %d, %d) = %d, want %d", c.hours, c.minutes, c.seconds, got.TotalSeconds(), c.want)
		}
		if got.String() != c.str {
			t.Errorf("String() = %q, want %q", got.String(), c.str)
		}
		if got.Hours() != c.hours || got.Minutes() != c.minutes || got.Seconds() != c.seconds {
			t.Errorf("parts of %v = (%d, %d, %d), want (%d, %d, %d)", got,
				got.Hours(), got.Minutes(), got.Seconds(), c.hours, c.minutes, c.seconds)
		}
	}
}

func TestNewZoneOffset_Invalid(t *testing.T) {
	cases := []struct {
		name                    string
		hours, minutes, seconds int
		want                    FieldError
	}{
		{"mixed hour and minute signs", 1, -30, 0, FieldError{Field: "minutes", Value: -30, Min: 0, Max: 59}},
		{"mixed minute and second signs", 0, 30, -5, FieldError{Field: "seconds", Value: -5, Min: 0, Max: 59}},
		{"negative hours positive seconds", -2, 0, 5, FieldError{Field: "seconds", Value: 5, Min: -59, Max: 0}},
		{"hours out of range", 19, 0, 0, FieldError{Field: "hours", Value: 19, Min: -18, Max: 18}},
		{"beyond 18 hours", 18, 0, 1, FieldError{Field: "totalSeconds", Value: 64801, Min: -64800, Max: 64800}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewZoneOffset(c.hours, c.minutes, c.seconds)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("NewZoneOffset() error = %v, want *FieldError", err)
			}
			if diff := cmp.Diff(c.want, *fe); diff != "" {
				t.Errorf("NewZoneOffset() error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestZoneOffsetOfSeconds_Bounds(t *testing.T) {
	for _, total := range []int{64801, -64801} {
		if _, err := ZoneOffsetOfSeconds(total); !errors.Is(err, ErrFieldRange) {
			t.Errorf("ZoneOffsetOfSeconds(%d) error = %v, want ErrFieldRange", total, err)
		}
	}
	if _, err := ZoneOffsetOfSeconds(64800); err != nil {
		t.Errorf("ZoneOffsetOfSeconds(64800) failed: %v", err)
	}
}

func TestLocalDateTime_InstantRoundTrip(t *testing.T) {
	est := MustZoneOffset(-5 * 3600)
	local := MustLocalDateTime(2025, time.March, 9, 2, 0, 0, 0)
	i := local.Instant(est)
	if want := Unix(1741503600, 0); i != want {
		t.Errorf("Instant() = %v, want %v", i, want)
	}
	if got := LocalAt(i, est); got != local {
		t.Errorf("LocalAt() = %v, want %v", got, local)
	}
	early := MustLocalDateTime(-200, time.February, 29, 23, 59, 59, 999_999_999)
	if got := LocalAt(early.Instant(est), est); got != early {
		t.Errorf("LocalAt() = %v, want %v", got, early)
	}
}

func TestLocalDateTime_Ordering(t *testing.T) {
	a := MustLocalDateTime(2025, time.November, 2, 1, 30, 0, 0)
	b := MustLocalDateTime(2025, time.November, 2, 1, 30, 0, 1)
	c := MustLocalDateTime(2025, time.November, 3, 0, 0, 0, 0)
	if !a.Before(b) || !b.Before(c) || !c.After(a) || a.Compare(a) != 0 {
		t.Errorf("ordering of %v, %v, %v is wrong", a, b, c)
	}
	if got := c.Sub(a); got != Minutes(22*60+30) {
		t.Errorf("Sub() = %v, want 22h30m", got)
	}
}

func TestLocalDateTime_Add(t *testing.T) {
	start := MustLocalDateTime(2024, time.December, 31, 23, 0, 0, 0)
	cases := []struct {
		d    Duration
		want LocalDateTime
	}{
		{Hours(1), MustLocalDateTime(2025, time.January, 1, 0, 0, 0, 0)},
		{Hours(-24), MustLocalDateTime(2024, time.December, 30, 23, 0, 0, 0)},
		{Days(60), MustLocalDateTime(2025, time.March, 1, 23, 0, 0, 0)},
		{Nanoseconds(-1), MustLocalDateTime(2024, time.December, 31, 22, 59, 59, 999_999_999)},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, start.Add(c.d)); diff != "" {
			t.Errorf("Add(%v) mismatch (-want +got):\n%s", c.d, diff)
		}
	}
}

func TestLocalDateTimeOf_LeapSecond(t *testing.T) {
	cases := []struct {
		name string
		got  LocalDateTime
		want LocalDateTime
	}{
		{
			"end of year",
			MustLocalDateTime(2016, time.December, 31, 23, 59, 60, 0),
			MustLocalDateTime(2017, time.January, 1, 0, 0, 0, 0),
		},
		{
			"mid day keeps fraction",
			MustLocalDateTime(2015, time.June, 30, 12, 14, 60, 500),
			MustLocalDateTime(2015, time.June, 30, 12, 15, 0, 500),
		},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, c.got); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", c.name, diff)
		}
	}
	if _, err := NewLocalTime(23, 59, 60, 0); !errors.Is(err, ErrFieldRange) {
		t.Errorf("NewLocalTime(23, 59, 60, 0) error = %v, want ErrFieldRange", err)
	}
	if _, err := LocalDateTimeOf(2016, time.December, 31, 23, 59, 61, 0); !errors.Is(err, ErrFieldRange) {
		t.Errorf("LocalDateTimeOf(second 61) error = %v, want ErrFieldRange", err)
	}
}

func TestLocalDateTimeOf_LeapSecondAtMaxYear(t *testing.T) {
	_, err := LocalDateTimeOf(MaxYear, time.December, 31, 23, 59, 60, 0)
	want := &FieldError{Field: "year", Value: MaxYear + 1, Min: MinYear, Max: MaxYear}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("LocalDateTimeOf(MaxYear-12-31T23:59:60) error = %v, want %v", err, want)
	}
	if diff := cmp.Diff(want, fe); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}

	got, err := LocalDateTimeOf(MaxYear, time.December, 31, 23, 58, 60, 0)
	if err != nil {
		t.Fatalf("LocalDateTimeOf(MaxYear-12-31T23:58:60) failed: %v", err)
	}
	if diff := cmp.Diff(MustLocalDateTime(MaxYear, time.December, 31, 23, 59, 0, 0), got); diff != "" {
		t.Errorf("fold mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalDateTime_YearRange(t *testing.T) {
	last := MustLocalDateTime(MaxYear, time.December, 31, 23, 0, 0, 0)
	first := MustLocalDateTime(MinYear, time.January, 1, 1, 0, 0, 0)
	if got, want := last.Add(Minutes(59)), MustLocalDateTime(MaxYear, time.December, 31, 23, 59, 0, 0); got != want {
		t.Errorf("Add(59m) = %v, want %v", got, want)
	}
	cases := []struct {
		name string
		f    func()
	}{
		{"Add past MaxYear", func() { last.Add(Hours(2)) }},
		{"Add before MinYear", func() { first.Add(Hours(-2)) }},
		{"AddDays past MaxYear", func() { last.Date().AddDays(1) }},
		{"AddDays before MinYear", func() { first.Date().AddDays(-1) }},
		{"AddDays overflowing int64", func() { last.Date().AddDays(math.MaxInt64) }},
		{"LocalDateOfEpochDay", func() { LocalDateOfEpochDay(maxEpochDay + 1) }},
		{"LocalAt", func() { LocalAt(MaxInstant, MustZoneOffset(3600)) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", c.name)
				}
			}()
			c.f()
		})
	}
}

func TestLocalTime(t *testing.T) {
	lt := MustLocalTime(2, 30, 5, 120_000_000)
	if got, want := lt.String(), "02:30:05.12"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back, err := LocalTimeOfNanoOfDay(lt.NanoOfDay())
	if err != nil || back != lt {
		t.Errorf("LocalTimeOfNanoOfDay(%d) = %v, %v, want %v", lt.NanoOfDay(), back, err, lt)
	}
	if _, err := LocalTimeOfNanoOfDay(nanosPerDay); err == nil {
		t.Errorf("LocalTimeOfNanoOfDay(nanosPerDay) succeeded")
	}
}
