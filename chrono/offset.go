package chrono

import "fmt"

// MaxOffsetSeconds bounds the magnitude of a ZoneOffset (18 hours).
const MaxOffsetSeconds = 18 * secondsPerHour

// ZoneOffset is the amount of time local clocks are ahead of UTC, in whole
// seconds. Negative offsets are west of Greenwich.
type ZoneOffset struct {
	seconds int32
}

// UTC is the zero offset.
var UTC = ZoneOffset{}

// NewZoneOffset returns the offset hours:minutes:seconds.
//
// The first non-zero unit fixes the sign, and smaller units must be zero or
// carry the same sign: (1, -30, 0) is rejected, (0, -30, -15) is -00:30:15.
func NewZoneOffset(hours, minutes, seconds int) (ZoneOffset, error) {
	if err := checkField("hours", int64(hours), -18, 18); err != nil {
		return ZoneOffset{}, err
	}
	lo, hi := signedRange(hours, 59)
	if err := checkField("minutes", int64(minutes), lo, hi); err != nil {
		return ZoneOffset{}, err
	}
	sign := hours
	if sign == 0 {
		sign = minutes
	}
	lo, hi = signedRange(sign, 59)
	if err := checkField("seconds", int64(seconds), lo, hi); err != nil {
		return ZoneOffset{}, err
	}
	return ZoneOffsetOfSeconds(hours*secondsPerHour + minutes*secondsPerMinute + seconds)
}

// ZoneOffsetOfSeconds returns the offset of total seconds.
func ZoneOffsetOfSeconds(total int) (ZoneOffset, error) {
	if err := checkField("totalSeconds", int64(total), -MaxOffsetSeconds, MaxOffsetSeconds); err != nil {
		return ZoneOffset{}, err
	}
	return ZoneOffset{seconds: int32(total)}, nil
}

// MustZoneOffset is like ZoneOffsetOfSeconds but panics on invalid input.
func MustZoneOffset(total int) ZoneOffset {
	o, err := ZoneOffsetOfSeconds(total)
	if err != nil {
		panic(err)
	}
	return o
}

func signedRange(sign, limit int) (int64, int64) {
	switch {
	case sign > 0:
		return 0, int64(limit)
	case sign < 0:
		return -int64(limit), 0
	}
	return -int64(limit), int64(limit)
}

// TotalSeconds returns the offset in seconds.
func (o ZoneOffset) TotalSeconds() int { return int(o.seconds) }

// Duration returns the offset as a Duration.
func (o ZoneOffset) Duration() Duration { return Seconds(int64(o.seconds)) }

// Hours returns the hours part, carrying the offset's sign.
func (o ZoneOffset) Hours() int { return int(o.seconds) / secondsPerHour }

// Minutes returns the minutes part, carrying the offset's sign.
func (o ZoneOffset) Minutes() int { return int(o.seconds) / secondsPerMinute % 60 }

// Seconds returns the seconds part, carrying the offset's sign.
func (o ZoneOffset) Seconds() int { return int(o.seconds) % 60 }

// Compare orders offsets by total seconds.
func (o ZoneOffset) Compare(p ZoneOffset) int { return cmpInt(int(o.seconds), int(p.seconds)) }

func (o ZoneOffset) Equal(p ZoneOffset) bool { return o == p }

// String formats the offset as +hh:mm or +hh:mm:ss, and the zero offset as Z.
func (o ZoneOffset) String() string {
	if o.seconds == 0 {
		return "Z"
	}
	sign := '+'
	s := int(o.seconds)
	if s < 0 {
		sign = '-'
		s = -s
	}
	h, m, sec := s/secondsPerHour, s/secondsPerMinute%60, s%60
	if sec != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, sec)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
