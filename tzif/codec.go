package tzif

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const asciiNewLine = '\n'

// Encode writes d as a TZif file. Files of version V2 and above carry a V1
// block holding the transitions and leap seconds that fit in 32 bits.
func Encode(w io.Writer, d Data) error {
	if err := Validate(d); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	bw := bufio.NewWriter(w)
	if err := encode(bw, d); err != nil {
		return err
	}
	return bw.Flush()
}

func encode(w io.Writer, d Data) error {
	if d.Version == V1 {
		if err := d.header(V1, len(d.TransitionTimes), len(d.LeapSeconds)).Write(w); err != nil {
			return fmt.Errorf("write v1 header: %w", err)
		}
		if err := writeBlock(w, d, 4); err != nil {
			return fmt.Errorf("write v1 data: %w", err)
		}
		return nil
	}

	v1 := d
	v1.TransitionTimes, v1.TransitionTypes = nil, nil
	for i, t := range d.TransitionTimes {
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			v1.TransitionTimes = append(v1.TransitionTimes, t)
			v1.TransitionTypes = append(v1.TransitionTypes, d.TransitionTypes[i])
		}
	}
	v1.LeapSeconds = nil
	for _, l := range d.LeapSeconds {
		if l.Occur >= math.MinInt32 && l.Occur <= math.MaxInt32 {
			v1.LeapSeconds = append(v1.LeapSeconds, l)
		}
	}
	if err := v1.header(d.Version, len(v1.TransitionTimes), len(v1.LeapSeconds)).Write(w); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := writeBlock(w, v1, 4); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if err := d.header(d.Version, len(d.TransitionTimes), len(d.LeapSeconds)).Write(w); err != nil {
		return fmt.Errorf("write v2 header: %w", err)
	}
	if err := writeBlock(w, d, 8); err != nil {
		return fmt.Errorf("write v2 data: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", d.Footer); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeBlock(w io.Writer, d Data, timeSize int) error {
	writeTime := func(t int64) error {
		if timeSize == 4 {
			return write(w, int32(t))
		}
		return write(w, t)
	}
	for _, t := range d.TransitionTimes {
		if err := writeTime(t); err != nil {
			return err
		}
	}
	if err := write(w, d.TransitionTypes); err != nil {
		return err
	}
	for _, t := range d.LocalTimeTypes {
		if err := write(w, t); err != nil {
			return err
		}
	}
	if _, err := w.Write(d.Designations); err != nil {
		return err
	}
	for _, l := range d.LeapSeconds {
		if err := writeTime(l.Occur); err != nil {
			return err
		}
		if err := write(w, l.Corr); err != nil {
			return err
		}
	}
	if err := write(w, d.StandardWallIndicators); err != nil {
		return err
	}
	return write(w, d.UTLocalIndicators)
}

func write(w io.Writer, v any) error { return binary.Write(w, order, v) }

func read(r io.Reader, v any) error { return binary.Read(r, order, v) }

// Decode reads a TZif file. For V2+ files the V1 block is skipped and the
// 64-bit block and footer are returned.
func Decode(r io.Reader) (Data, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 header: %w", err)
	}
	d, err := readBlock(br, h, 4)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 data block: %w", err)
	}
	d.Version = h.Version
	if h.Version == V1 {
		return d, nil
	}

	h2, err := ReadHeader(br)
	if err != nil {
		return Data{}, fmt.Errorf("read v2 header: %w", err)
	}
	if h2.Version != h.Version {
		return Data{}, fmt.Errorf("inconsistent version: v1 header = %v, v2 header = %v", h.Version, h2.Version)
	}
	d, err = readBlock(br, h2, 8)
	if err != nil {
		return Data{}, fmt.Errorf("read v2 data block: %w", err)
	}
	d.Version = h2.Version
	if d.Footer, err = readFooter(br); err != nil {
		return Data{}, fmt.Errorf("read footer: %w", err)
	}
	return d, nil
}

// maxCount bounds header counts so that corrupt headers fail instead of
// allocating huge buffers.
const maxCount = 1 << 20

func readBlock(r io.Reader, h Header, timeSize int) (Data, error) {
	for _, n := range []uint32{h.Isutcnt, h.Isstdcnt, h.Leapcnt, h.Timecnt, h.Typecnt, h.Charcnt} {
		if n > maxCount {
			return Data{}, fmt.Errorf("count %d exceeds %d", n, maxCount)
		}
	}
	readTime := func() (int64, error) {
		if timeSize == 4 {
			var t int32
			err := read(r, &t)
			return int64(t), err
		}
		var t int64
		err := read(r, &t)
		return t, err
	}

	var d Data
	if h.Timecnt > 0 {
		d.TransitionTimes = make([]int64, h.Timecnt)
		for i := range d.TransitionTimes {
			t, err := readTime()
			if err != nil {
				return d, fmt.Errorf("reading transition times: %w", err)
			}
			d.TransitionTimes[i] = t
		}
		d.TransitionTypes = make([]uint8, h.Timecnt)
		if err := read(r, d.TransitionTypes); err != nil {
			return d, fmt.Errorf("reading transition types: %w", err)
		}
	}
	if h.Typecnt > 0 {
		d.LocalTimeTypes = make([]LocalTimeType, h.Typecnt)
		if err := read(r, d.LocalTimeTypes); err != nil {
			return d, fmt.Errorf("reading local time type records: %w", err)
		}
	}
	if h.Charcnt > 0 {
		d.Designations = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, d.Designations); err != nil {
			return d, fmt.Errorf("reading time zone designations: %w", err)
		}
	}
	if h.Leapcnt > 0 {
		d.LeapSeconds = make([]LeapSecond, h.Leapcnt)
		for i := range d.LeapSeconds {
			occur, err := readTime()
			if err != nil {
				return d, fmt.Errorf("reading leap second record: %w", err)
			}
			d.LeapSeconds[i].Occur = occur
			if err := read(r, &d.LeapSeconds[i].Corr); err != nil {
				return d, fmt.Errorf("reading leap second record: %w", err)
			}
		}
	}
	if h.Isstdcnt > 0 {
		d.StandardWallIndicators = make([]bool, h.Isstdcnt)
		if err := read(r, d.StandardWallIndicators); err != nil {
			return d, fmt.Errorf("reading standard/wall indicators: %w", err)
		}
	}
	if h.Isutcnt > 0 {
		d.UTLocalIndicators = make([]bool, h.Isutcnt)
		if err := read(r, d.UTLocalIndicators); err != nil {
			return d, fmt.Errorf("reading UT/local indicators: %w", err)
		}
	}
	return d, nil
}

func readFooter(r *bufio.Reader) (string, error) {
	c, err := r.ReadByte()
	if err != nil {
		return "", fmt.Errorf("reading newline: %w", err)
	}
	if c != asciiNewLine {
		return "", fmt.Errorf("expected newline, got %q", c)
	}
	s, err := r.ReadString(asciiNewLine)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("reading TZ string: %w", err)
	}
	return s[:len(s)-1], nil
}
