package posixtz

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-tzrules/chrono"
	"github.com/ngrash/go-tzrules/zone"
)

func hours(h int) chrono.ZoneOffset { return chrono.MustZoneOffset(h * 3600) }

func mwd(t *testing.T, m time.Month, w int, d time.Weekday, at chrono.Duration) zone.DateRule {
	t.Helper()
	r, err := zone.MonthWeekDay(m, w, d, at)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func julian(t *testing.T, day int, leap bool, at chrono.Duration) zone.DateRule {
	t.Helper()
	r, err := zone.JulianDay(day, leap, at)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestParse(t *testing.T) {
	cases := []struct {
		tz  string
		std zone.StandardTime
		dst *zone.DaylightSavingTime
	}{
		{
			tz:  "HST10",
			std: zone.StandardTime{Offset: hours(-10), Designation: "HST"},
		},
		{
			tz:  "<+0530>-5:30",
			std: zone.StandardTime{Offset: chrono.MustZoneOffset(5*3600 + 1800), Designation: "+0530"},
		},
		{
			tz:  "EST5EDT,M3.2.0,M11.1.0",
			std: zone.StandardTime{Offset: hours(-5), Designation: "EST"},
			dst: &zone.DaylightSavingTime{
				Offset: hours(-4), Designation: "EDT",
				Start: mwd(t, time.March, 2, time.Sunday, chrono.Hours(2)),
				End:   mwd(t, time.November, 1, time.Sunday, chrono.Hours(2)),
			},
		},
		{
			tz:  "EST5EDT",
			std: zone.StandardTime{Offset: hours(-5), Designation: "EST"},
			dst: &zone.DaylightSavingTime{
				Offset: hours(-4), Designation: "EDT",
				Start: mwd(t, time.March, 2, time.Sunday, chrono.Hours(2)),
				End:   mwd(t, time.November, 1, time.Sunday, chrono.Hours(2)),
			},
		},
		{
			tz:  "CET-1CEST,M3.5.0,M10.5.0/3",
			std: zone.StandardTime{Offset: hours(1), Designation: "CET"},
			dst: &zone.DaylightSavingTime{
				Offset: hours(2), Designation: "CEST",
				Start: mwd(t, time.March, 5, time.Sunday, chrono.Hours(2)),
				End:   mwd(t, time.October, 5, time.Sunday, chrono.Hours(3)),
			},
		},
		{
			tz:  "IST-1GMT0,M10.5.0,M3.5.0/1",
			std: zone.StandardTime{Offset: hours(1), Designation: "IST"},
			dst: &zone.DaylightSavingTime{
				Offset: chrono.UTC, Designation: "GMT",
				Start: mwd(t, time.October, 5, time.Sunday, chrono.Hours(2)),
				End:   mwd(t, time.March, 5, time.Sunday, chrono.Hours(1)),
			},
		},
		{
			tz:  "<-03>3<-02>,M3.5.0/-2,M10.5.0/-1",
			std: zone.StandardTime{Offset: hours(-3), Designation: "-03"},
			dst: &zone.DaylightSavingTime{
				Offset: hours(-2), Designation: "-02",
				Start: mwd(t, time.March, 5, time.Sunday, chrono.Hours(-2)),
				End:   mwd(t, time.October, 5, time.Sunday, chrono.Hours(-1)),
			},
		},
		{
			tz:  "<+00>0<+02>-2,M3.5.0/1,M10.5.0/3",
			std: zone.StandardTime{Offset: chrono.UTC, Designation: "+00"},
			dst: &zone.DaylightSavingTime{
				Offset: hours(2), Designation: "+02",
				Start: mwd(t, time.March, 5, time.Sunday, chrono.Hours(1)),
				End:   mwd(t, time.October, 5, time.Sunday, chrono.Hours(3)),
			},
		},
		{
			tz:  "XXX3YYY,J60/1:30:15,300/167",
			std: zone.StandardTime{Offset: hours(-3), Designation: "XXX"},
			dst: &zone.DaylightSavingTime{
				Offset: hours(-2), Designation: "YYY",
				Start: julian(t, 60, false, chrono.Seconds(5415)),
				End:   julian(t, 301, true, chrono.Hours(167)),
			},
		},
		{
			tz:  "EST5EDT,0/0,J365/25",
			std: zone.StandardTime{Offset: hours(-4), Designation: "EDT"},
		},
	}
	for _, c := range cases {
		t.Run(c.tz, func(t *testing.T) {
			r, err := Parse(c.tz, nil)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", c.tz, err)
			}
			if diff := cmp.Diff(c.std, r.Standard()); diff != "" {
				t.Errorf("Standard() mismatch (-want +got):\n%s", diff)
			}
			dst, ok := r.DaylightSaving()
			if c.dst == nil {
				if ok {
					t.Errorf("DaylightSaving() = %v, want none", dst)
				}
				return
			}
			if !ok {
				t.Fatalf("DaylightSaving() reported none")
			}
			if diff := cmp.Diff(*c.dst, dst); diff != "" {
				t.Errorf("DaylightSaving() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, tz := range []string{
		"",
		"ES5",
		"<EST5",
		"EST",
		"EST25",
		"EST5EDT,M3.2.0",
		"EST5EDT,M13.2.0,M11.1.0",
		"EST5EDT,M3.6.0,M11.1.0",
		"EST5EDT,M3.2.7,M11.1.0",
		"EST5EDT,J0,J365",
		"EST5EDT,366,J365",
		"EST5EDT,M3.2.0/168,M11.1.0",
		"EST5EDT,M3.2.0,M11.1.0x",
		"EST5EDT4,M3.2.0,M11.1.0;",
		"EST5EST5,M3.2.0,M11.1.0",
		"EST-19",
	} {
		if _, err := Parse(tz, nil); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", tz, err)
		}
	}
}

func TestParse_Projection(t *testing.T) {
	cache := zone.NewTransitionCache()
	r, err := Parse("EST5EDT,M3.2.0,M11.1.0", cache)
	if err != nil {
		t.Fatal(err)
	}
	start, end, ok := r.Transitions(2025)
	if !ok {
		t.Fatal("Transitions(2025) reported no daylight saving time")
	}
	if got, want := start.Instant(), chrono.Unix(1741503600, 0); got != want {
		t.Errorf("start = %v, want %v", got, want)
	}
	if got, want := end.Instant(), chrono.Unix(1762063200, 0); got != want {
		t.Errorf("end = %v, want %v", got, want)
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d, want 1", cache.Len())
	}
}
