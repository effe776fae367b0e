// Package tzif reads and writes the TZif file format according to RFC 8536.
// https://datatracker.ietf.org/doc/html/rfc8536
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// In V1, time values are 32bit and in V2 upwards time values are 64bit.
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

const (
	// V1 files contain only the version 1 header and data block.
	V1 Version = 0x00
	// V2 files add a 64-bit header and data block, and a POSIX TZ footer.
	V2 Version = 0x32 // '2'
	// V3 files may use the TZ string extensions of RFC 8536 section 3.3.1.
	V3 Version = 0x33 // '3'
	// V4 files may carry a truncated or expiring leap second table.
	V4 Version = 0x34 // '4'
)

// Magic is the four-octet ASCII sequence "TZif" starting every header.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header counts the records of the data block that follows it.
type Header struct {
	Version  Version
	Reserved [15]byte
	// Isutcnt is the number of UT/local indicators.
	Isutcnt uint32
	// Isstdcnt is the number of standard/wall indicators.
	Isstdcnt uint32
	// Leapcnt is the number of leap second records.
	Leapcnt uint32
	// Timecnt is the number of transition times.
	Timecnt uint32
	// Typecnt is the number of local time type records, never zero.
	Typecnt uint32
	// Charcnt is the number of octets of designation strings.
	Charcnt uint32
}

func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

// ReadHeader reads a header including its magic.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if magic != Magic {
		return h, fmt.Errorf("invalid magic: %q", magic[:])
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, fmt.Errorf("reading header: %w", err)
	}
	return h, nil
}

// LocalTimeType describes one local time type: its UT offset, whether it
// is daylight saving time, and the index of its designation.
type LocalTimeType struct {
	Utoff int32
	Dst   bool
	Idx   uint8
}

// LeapSecond is a leap second record with a 64-bit occurrence time.
type LeapSecond struct {
	Occur int64
	Corr  int32
}

// Data is the content of a TZif file. For V2+ files it holds the 64-bit
// data block and the footer; the V1 block is only used for V1 files.
type Data struct {
	Version                Version
	TransitionTimes        []int64
	TransitionTypes        []uint8
	LocalTimeTypes         []LocalTimeType
	Designations           []byte
	LeapSeconds            []LeapSecond
	StandardWallIndicators []bool
	UTLocalIndicators      []bool
	// Footer is the POSIX TZ string describing times after the last
	// transition. It is empty for V1 files and for zones without a rule.
	Footer string
}

// Designation returns the NUL-terminated designation starting at idx.
func (d Data) Designation(idx uint8) (string, error) {
	if int(idx) >= len(d.Designations) {
		return "", fmt.Errorf("designation index %d out of range (charcnt %d)", idx, len(d.Designations))
	}
	s := d.Designations[idx:]
	end := bytes.IndexByte(s, 0)
	if end < 0 {
		return "", fmt.Errorf("designation at %d is not NUL-terminated", idx)
	}
	return string(s[:end]), nil
}

func (d Data) header(version Version, timecnt, leapcnt int) Header {
	return Header{
		Version:  version,
		Isutcnt:  uint32(len(d.UTLocalIndicators)),
		Isstdcnt: uint32(len(d.StandardWallIndicators)),
		Leapcnt:  uint32(leapcnt),
		Timecnt:  uint32(timecnt),
		Typecnt:  uint32(len(d.LocalTimeTypes)),
		Charcnt:  uint32(len(d.Designations)),
	}
}
