package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ngrash/go-tzrules/tzdb"
	"github.com/ngrash/go-tzrules/tzif"
)

var rulesFlag = flag.Bool("rules", false, "Also print the transitions derived from the file")

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzinspect [-rules] <tzif file>")
		flag.Usage()
		os.Exit(1)
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}

	r := bytes.NewReader(b)
	h, err := tzif.ReadHeader(r)
	if err != nil {
		fmt.Println("reading header:", err)
		os.Exit(1)
	}
	printHeader(h)

	d, err := tzif.Decode(bytes.NewReader(b))
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}
	printData(d)

	if err := tzif.Validate(d); err != nil {
		fmt.Println("Validation errors")
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Println(" ", line)
		}
		fmt.Println()
	}

	if *rulesFlag {
		printRules(d)
	}
}

func printHeader(h tzif.Header) {
	fmt.Println("Header")
	fmt.Println("  version =", h.Version)
	fmt.Println("  isutcnt =", h.Isutcnt)
	fmt.Println("  isstdcnt =", h.Isstdcnt)
	fmt.Println("  leapcnt =", h.Leapcnt)
	fmt.Println("  timecnt =", h.Timecnt)
	fmt.Println("  typecnt =", h.Typecnt)
	fmt.Println("  charcnt =", h.Charcnt)
	fmt.Println()
}

func printData(d tzif.Data) {
	fmt.Println("Data block", d.Version)
	fmt.Printf("  TransitionTimes (%d) = %v\n", len(d.TransitionTimes), d.TransitionTimes)
	fmt.Printf("  TransitionTypes (%d) = %v\n", len(d.TransitionTypes), d.TransitionTypes)
	fmt.Printf("  LocalTimeTypes (%d) = %+v\n", len(d.LocalTimeTypes), d.LocalTimeTypes)
	fmt.Printf("  Designations (%d) = %v\n", len(d.Designations), strings.Split(string(d.Designations), "\x00"))
	fmt.Printf("  LeapSeconds (%d) = %+v\n", len(d.LeapSeconds), d.LeapSeconds)
	fmt.Printf("  StandardWallIndicators (%d) = %v\n", len(d.StandardWallIndicators), d.StandardWallIndicators)
	fmt.Printf("  UTLocalIndicators (%d) = %v\n", len(d.UTLocalIndicators), d.UTLocalIndicators)
	fmt.Println()
	if d.Version > tzif.V1 {
		fmt.Println("Footer")
		fmt.Println("  TZString =", d.Footer)
		fmt.Println()
	}
}

func printRules(d tzif.Data) {
	rules, err := tzdb.Rules(d, nil)
	if err != nil {
		fmt.Println("converting:", err)
		os.Exit(1)
	}
	fmt.Println("Rules")
	fmt.Printf("  initial = %v %s\n", rules.Initial().Offset, rules.Initial().Designation)
	for _, t := range rules.Transitions() {
		fmt.Println(" ", t)
	}
	fmt.Printf("  final = %v %s\n", rules.Final().Offset, rules.Final().Designation)
	if tail := rules.TransitionRule(); tail != nil {
		fmt.Printf("  tail = %+v\n", tail.Standard())
		if dst, ok := tail.DaylightSaving(); ok {
			fmt.Printf("         %s %v from %v to %v\n", dst.Designation, dst.Offset, dst.Start, dst.End)
		}
	}
	fmt.Println()
}
