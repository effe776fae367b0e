package chrono

import (
	"fmt"
	"strings"
)

// LocalTime is a time of day without a date or time zone.
type LocalTime struct {
	hour       int
	minute     int
	second     int
	nanosecond int
}

// Midnight is 00:00:00.
var Midnight = LocalTime{}

// NewLocalTime returns the time hour:minute:second.nanosecond.
func NewLocalTime(hour, minute, second, nanosecond int) (LocalTime, error) {
	if err := checkField("hour", int64(hour), 0, 23); err != nil {
		return LocalTime{}, err
	}
	if err := checkField("minute", int64(minute), 0, 59); err != nil {
		return LocalTime{}, err
	}
	if err := checkField("second", int64(second), 0, 59); err != nil {
		return LocalTime{}, err
	}
	if err := checkField("nanosecond", int64(nanosecond), 0, nanosPerSecond-1); err != nil {
		return LocalTime{}, err
	}
	return LocalTime{hour: hour, minute: minute, second: second, nanosecond: nanosecond}, nil
}

// MustLocalTime is like NewLocalTime but panics on invalid input.
func MustLocalTime(hour, minute, second, nanosecond int) LocalTime {
	t, err := NewLocalTime(hour, minute, second, nanosecond)
	if err != nil {
		panic(err)
	}
	return t
}

// LocalTimeOfNanoOfDay returns the time n nanoseconds after midnight.
func LocalTimeOfNanoOfDay(n int64) (LocalTime, error) {
	if err := checkField("nanoOfDay", n, 0, nanosPerDay-1); err != nil {
		return LocalTime{}, err
	}
	return localTimeOfNanoOfDay(n), nil
}

func localTimeOfNanoOfDay(n int64) LocalTime {
	return LocalTime{
		hour:       int(n / nanosPerHour),
		minute:     int(n / nanosPerMinute % 60),
		second:     int(n / nanosPerSecond % 60),
		nanosecond: int(n % nanosPerSecond),
	}
}

func (t LocalTime) Hour() int       { return t.hour }
func (t LocalTime) Minute() int     { return t.minute }
func (t LocalTime) Second() int     { return t.second }
func (t LocalTime) Nanosecond() int { return t.nanosecond }

// NanoOfDay returns the nanoseconds elapsed since midnight.
func (t LocalTime) NanoOfDay() int64 {
	return int64(t.hour)*nanosPerHour + int64(t.minute)*nanosPerMinute +
		int64(t.second)*nanosPerSecond + int64(t.nanosecond)
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u.
func (t LocalTime) Compare(u LocalTime) int {
	a, b := t.NanoOfDay(), u.NanoOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t LocalTime) Before(u LocalTime) bool { return t.Compare(u) < 0 }
func (t LocalTime) After(u LocalTime) bool  { return t.Compare(u) > 0 }
func (t LocalTime) Equal(u LocalTime) bool  { return t == u }

// String formats t as hh:mm:ss with a trimmed fraction when nanoseconds are set.
func (t LocalTime) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	if t.nanosecond != 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%09d", t.nanosecond), "0")
	}
	return s
}
