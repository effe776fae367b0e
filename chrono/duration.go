// Package chrono provides the value types the zone rules engine operates on:
// nanosecond durations, absolute instants, UTC offsets and civil (zone-less)
// dates and times in the proleptic Gregorian calendar.
//
// All values are immutable. Constructors validate their input and report
// violations as *FieldError. Arithmetic on Duration is exact; overflowing
// the 128-bit range is a programming error and panics.
package chrono

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"time"
)

// Duration is a signed span of nanoseconds held in 128 bits.
//
// The value is hi*2^64 + lo in two's complement, so the zero value is a
// zero length duration and Duration values can be compared with == and used
// as map keys.
type Duration struct {
	hi int64
	lo uint64
}

const (
	nanosPerMicrosecond = 1000
	nanosPerMillisecond = 1000 * nanosPerMicrosecond
	nanosPerSecond      = 1000 * nanosPerMillisecond
	nanosPerMinute      = 60 * nanosPerSecond
	nanosPerHour        = 60 * nanosPerMinute
	nanosPerDay         = 24 * nanosPerHour

	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// two64 is 2^64 as a float64, used to join and split the halves of a Duration.
const two64 = 18446744073709551616.0

// Nanoseconds returns a Duration of n nanoseconds.
func Nanoseconds(n int64) Duration {
	if n < 0 {
		return Duration{hi: -1, lo: uint64(n)}
	}
	return Duration{lo: uint64(n)}
}

// Microseconds returns a Duration of n microseconds.
func Microseconds(n int64) Duration { return Nanoseconds(n).Mul(nanosPerMicrosecond) }

// Milliseconds returns a Duration of n milliseconds.
func Milliseconds(n int64) Duration { return Nanoseconds(n).Mul(nanosPerMillisecond) }

// Seconds returns a Duration of n seconds.
func Seconds(n int64) Duration { return Nanoseconds(n).Mul(nanosPerSecond) }

// Minutes returns a Duration of n minutes.
func Minutes(n int64) Duration { return Nanoseconds(n).Mul(nanosPerMinute) }

// Hours returns a Duration of n hours.
func Hours(n int64) Duration { return Nanoseconds(n).Mul(nanosPerHour) }

// Days returns a Duration of n days of exactly 24 hours.
func Days(n int64) Duration { return Nanoseconds(n).Mul(nanosPerDay) }

// NanosecondsFloat returns f nanoseconds rounded to the nearest nanosecond.
func NanosecondsFloat(f float64) Duration { return fromFloat(f) }

// MicrosecondsFloat returns f microseconds rounded to the nearest nanosecond.
func MicrosecondsFloat(f float64) Duration { return fromFloat(f * nanosPerMicrosecond) }

// MillisecondsFloat returns f milliseconds rounded to the nearest nanosecond.
func MillisecondsFloat(f float64) Duration { return fromFloat(f * nanosPerMillisecond) }

// SecondsFloat returns f seconds rounded to the nearest nanosecond.
func SecondsFloat(f float64) Duration { return fromFloat(f * nanosPerSecond) }

// MinutesFloat returns f minutes rounded to the nearest nanosecond.
func MinutesFloat(f float64) Duration { return fromFloat(f * nanosPerMinute) }

// HoursFloat returns f hours rounded to the nearest nanosecond.
func HoursFloat(f float64) Duration { return fromFloat(f * nanosPerHour) }

// DaysFloat returns f days rounded to the nearest nanosecond.
func DaysFloat(f float64) Duration { return fromFloat(f * nanosPerDay) }

// FromStd converts a time.Duration.
func FromStd(d time.Duration) Duration { return Nanoseconds(int64(d)) }

// Add returns d+e. It panics on overflow.
func (d Duration) Add(e Duration) Duration {
	lo, carry := bits.Add64(d.lo, e.lo, 0)
	hi, _ := bits.Add64(uint64(d.hi), uint64(e.hi), carry)
	if (d.hi < 0) == (e.hi < 0) && (int64(hi) < 0) != (d.hi < 0) {
		panic(fmt.Sprintf("chrono: duration overflow in %v + %v", d, e))
	}
	return Duration{hi: int64(hi), lo: lo}
}

// Sub returns d-e. It panics on overflow.
func (d Duration) Sub(e Duration) Duration {
	lo, borrow := bits.Sub64(d.lo, e.lo, 0)
	hi, _ := bits.Sub64(uint64(d.hi), uint64(e.hi), borrow)
	if (d.hi < 0) != (e.hi < 0) && (int64(hi) < 0) != (d.hi < 0) {
		panic(fmt.Sprintf("chrono: duration overflow in %v - %v", d, e))
	}
	return Duration{hi: int64(hi), lo: lo}
}

// Neg returns -d. It panics for the most negative Duration.
func (d Duration) Neg() Duration {
	if d.hi == math.MinInt64 && d.lo == 0 {
		panic("chrono: duration overflow in negation")
	}
	lo := ^d.lo + 1
	hi := ^d.hi
	if lo == 0 {
		hi++
	}
	return Duration{hi: hi, lo: lo}
}

// Abs returns the absolute value of d.
func (d Duration) Abs() Duration {
	if d.hi < 0 {
		return d.Neg()
	}
	return d
}

// Mul returns d*n. It panics on overflow.
func (d Duration) Mul(n int64) Duration {
	m, neg := d.magnitude()
	f, fneg := absInt64(n)
	loHi, lo := bits.Mul64(m.lo, f)
	hiHi, hiLo := bits.Mul64(m.hi, f)
	hi, carry := bits.Add64(hiLo, loHi, 0)
	if hiHi != 0 || carry != 0 {
		panic(fmt.Sprintf("chrono: duration overflow in %v * %d", d, n))
	}
	return fromMagnitude(uint128{hi: hi, lo: lo}, neg != fneg)
}

// Div returns d/n truncated toward zero. It panics if n is zero.
func (d Duration) Div(n int64) Duration {
	q, _ := d.quoRem(n)
	return q
}

// MulFloat returns d*f rounded to the nearest nanosecond.
// The halves of d are converted separately so that large values keep
// as much precision as a float64 can carry.
func (d Duration) MulFloat(f float64) Duration {
	return fromFloat(d.float() * f)
}

// DivFloat returns d/f rounded to the nearest nanosecond. It panics if f is zero.
func (d Duration) DivFloat(f float64) Duration {
	if f == 0 {
		panic("chrono: duration division by zero")
	}
	return fromFloat(d.float() / f)
}

// Compare returns -1, 0 or +1 depending on whether d is shorter than,
// equal to or longer than e.
func (d Duration) Compare(e Duration) int {
	switch {
	case d.hi < e.hi:
		return -1
	case d.hi > e.hi:
		return 1
	case d.lo < e.lo:
		return -1
	case d.lo > e.lo:
		return 1
	}
	return 0
}

// Equal reports whether d and e have the same length.
func (d Duration) Equal(e Duration) bool { return d == e }

// Less reports whether d is shorter than e.
func (d Duration) Less(e Duration) bool { return d.Compare(e) < 0 }

// IsZero reports whether d is zero.
func (d Duration) IsZero() bool { return d.hi == 0 && d.lo == 0 }

// Sign returns -1, 0 or +1.
func (d Duration) Sign() int { return d.Compare(Duration{}) }

// Nanoseconds returns d as an int64 count of nanoseconds and reports
// whether it fits.
func (d Duration) Nanoseconds() (int64, bool) {
	if (d.hi == 0 && d.lo <= math.MaxInt64) || (d.hi == -1 && d.lo > math.MaxInt64) {
		return int64(d.lo), true
	}
	return 0, false
}

// Float64 returns d in nanoseconds as a float64.
func (d Duration) Float64() float64 { return d.float() }

// Std converts d to a time.Duration and reports whether it fits.
func (d Duration) Std() (time.Duration, bool) {
	n, ok := d.Nanoseconds()
	return time.Duration(n), ok
}

// String formats d like time.Duration when it fits and as a plain
// nanosecond count otherwise.
func (d Duration) String() string {
	if n, ok := d.Nanoseconds(); ok {
		return time.Duration(n).String()
	}
	v := new(big.Int).Lsh(big.NewInt(d.hi), 64)
	v.Add(v, new(big.Int).SetUint64(d.lo))
	return v.String() + "ns"
}

// quoRem returns the quotient truncated toward zero and the remainder,
// which carries the sign of d.
func (d Duration) quoRem(n int64) (Duration, int64) {
	if n == 0 {
		panic("chrono: duration division by zero")
	}
	m, neg := d.magnitude()
	f, fneg := absInt64(n)
	qhi, r := bits.Div64(0, m.hi, f)
	qlo, r := bits.Div64(r, m.lo, f)
	rem := int64(r)
	if neg {
		rem = -rem
	}
	return fromMagnitude(uint128{hi: qhi, lo: qlo}, neg != fneg), rem
}

// floorDivMod returns floor(d/n) and the non-negative remainder for n > 0.
func (d Duration) floorDivMod(n int64) (Duration, int64) {
	q, r := d.quoRem(n)
	if r < 0 {
		q = q.Sub(Nanoseconds(1))
		r += n
	}
	return q, r
}

func (d Duration) float() float64 {
	m, neg := d.magnitude()
	f := float64(m.hi)*two64 + float64(m.lo)
	if neg {
		return -f
	}
	return f
}

type uint128 struct {
	hi, lo uint64
}

func (d Duration) magnitude() (uint128, bool) {
	if d.hi >= 0 {
		return uint128{hi: uint64(d.hi), lo: d.lo}, false
	}
	lo := ^d.lo + 1
	hi := ^uint64(d.hi)
	if lo == 0 {
		hi++
	}
	return uint128{hi: hi, lo: lo}, true
}

func fromMagnitude(m uint128, neg bool) Duration {
	if !neg {
		if m.hi > math.MaxInt64 {
			panic("chrono: duration overflow")
		}
		return Duration{hi: int64(m.hi), lo: m.lo}
	}
	if m.hi > 1<<63 || (m.hi == 1<<63 && m.lo != 0) {
		panic("chrono: duration overflow")
	}
	lo := ^m.lo + 1
	hi := ^m.hi
	if lo == 0 {
		hi++
	}
	return Duration{hi: int64(hi), lo: lo}
}

func fromFloat(f float64) Duration {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("chrono: cannot represent %v as a duration", f))
	}
	r := math.Abs(math.Round(f))
	hi := math.Floor(r / two64)
	if hi > two64/2 {
		panic(fmt.Sprintf("chrono: duration overflow converting %v", f))
	}
	lo := r - hi*two64
	var ulo uint64
	switch {
	case lo <= 0:
	case lo >= two64:
		ulo = math.MaxUint64
	default:
		ulo = uint64(lo)
	}
	return fromMagnitude(uint128{hi: uint64(hi), lo: ulo}, f < 0)
}

func absInt64(n int64) (uint64, bool) {
	if n < 0 {
		return uint64(-(n + 1)) + 1, true
	}
	return uint64(n), false
}
