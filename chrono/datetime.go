package chrono

import (
	"math"
	"time"
)

// LocalDateTime is a date and time of day without a time zone.
// Values are ordered by date, then by time.
type LocalDateTime struct {
	date LocalDate
	time LocalTime
}

// NewLocalDateTime combines a date and a time of day.
func NewLocalDateTime(date LocalDate, t LocalTime) LocalDateTime {
	return LocalDateTime{date: date, time: t}
}

// LocalDateTimeOf validates and combines all fields.
//
// A second of 60 is accepted and folded forward: 23:59:60 on a day becomes
// 00:00:00 on the next day. No leap second table is consulted.
func LocalDateTimeOf(year int, month time.Month, day, hour, minute, second, nanosecond int) (LocalDateTime, error) {
	date, err := NewLocalDate(year, month, day)
	if err != nil {
		return LocalDateTime{}, err
	}
	leap := second == 60
	if leap {
		second = 59
	}
	t, err := NewLocalTime(hour, minute, second, nanosecond)
	if err != nil {
		return LocalDateTime{}, err
	}
	dt := LocalDateTime{date: date, time: t}
	if leap {
		return fromLocalNanos(dt.localNanos().Add(Seconds(1)))
	}
	return dt, nil
}

// MustLocalDateTime is like LocalDateTimeOf but panics on invalid input.
func MustLocalDateTime(year int, month time.Month, day, hour, minute, second, nanosecond int) LocalDateTime {
	dt, err := LocalDateTimeOf(year, month, day, hour, minute, second, nanosecond)
	if err != nil {
		panic(err)
	}
	return dt
}

// LocalAt returns the local date and time of instant i at offset.
// It panics if the local date falls outside [MinYear, MaxYear].
func LocalAt(i Instant, offset ZoneOffset) LocalDateTime {
	dt, err := fromLocalNanos(i.d.Add(offset.Duration()))
	if err != nil {
		panic(err)
	}
	return dt
}

func (dt LocalDateTime) Date() LocalDate { return dt.date }
func (dt LocalDateTime) Time() LocalTime { return dt.time }

// Instant returns the instant at which clocks set to offset show dt.
func (dt LocalDateTime) Instant(offset ZoneOffset) Instant {
	return Instant{d: dt.localNanos().Sub(offset.Duration())}
}

// Add returns dt shifted by d on the local time line, ignoring any zone.
// It panics if the result falls outside [MinYear, MaxYear].
func (dt LocalDateTime) Add(d Duration) LocalDateTime {
	if d.IsZero() {
		return dt
	}
	r, err := fromLocalNanos(dt.localNanos().Add(d))
	if err != nil {
		panic(err)
	}
	return r
}

// Sub returns the Duration dt-other on the local time line.
func (dt LocalDateTime) Sub(other LocalDateTime) Duration {
	return dt.localNanos().Sub(other.localNanos())
}

// Compare returns -1, 0 or +1 depending on whether dt is before, equal to
// or after other.
func (dt LocalDateTime) Compare(other LocalDateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	return dt.time.Compare(other.time)
}

func (dt LocalDateTime) Before(other LocalDateTime) bool { return dt.Compare(other) < 0 }
func (dt LocalDateTime) After(other LocalDateTime) bool  { return dt.Compare(other) > 0 }
func (dt LocalDateTime) Equal(other LocalDateTime) bool  { return dt == other }

// String formats dt as YYYY-MM-DDThh:mm:ss[.fffffffff].
func (dt LocalDateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}

// localNanos counts nanoseconds from 1970-01-01T00:00 on the local time line.
func (dt LocalDateTime) localNanos() Duration {
	return Days(dt.date.EpochDay()).Add(Nanoseconds(dt.time.NanoOfDay()))
}

func fromLocalNanos(d Duration) (LocalDateTime, error) {
	days, nanos := d.floorDivMod(nanosPerDay)
	n, ok := days.Nanoseconds()
	if !ok {
		n = math.MaxInt64
		if days.Sign() < 0 {
			n = math.MinInt64
		}
	}
	date, err := dateOfEpochDay(n)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: date, time: localTimeOfNanoOfDay(nanos)}, nil
}
