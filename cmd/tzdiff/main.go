package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-tzrules/chrono"
	"github.com/ngrash/go-tzrules/tzdb"
)

var untilFlag = flag.Int("until", 2037, "Compare projected transitions up to the end of this year")

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// transition is the comparable form of a zone.Transition.
type transition struct {
	Instant string
	Kind    string
	Before  string
	After   string
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		return fmt.Errorf("Usage: tzdiff [-until <year>] <zoneinfo dir A> <zoneinfo dir B> <zone id>\n")
	}

	a, err := transitions(args[0], args[2], *untilFlag)
	if err != nil {
		return fmt.Errorf("A: %w", err)
	}
	b, err := transitions(args[1], args[2], *untilFlag)
	if err != nil {
		return fmt.Errorf("B: %w", err)
	}

	if diff := cmp.Diff(a, b); diff != "" {
		fmt.Println("zones are different: -A +B")
		fmt.Println(diff)
	} else {
		fmt.Println("zones are identical")
	}

	return nil
}

func transitions(dir, id string, until int) ([]transition, error) {
	db := tzdb.New(tzdb.Options{Dirs: []string{dir}})
	if db.Root() == "" {
		return nil, fmt.Errorf("%w in %s", tzdb.ErrDatabaseNotFound, dir)
	}
	rules, err := db.Load(id)
	if err != nil {
		return nil, err
	}
	end := chrono.MustLocalDateTime(until+1, time.January, 1, 0, 0, 0, 0).Instant(chrono.UTC)

	var out []transition
	for at := chrono.MinInstant; ; {
		t, ok := rules.NextTransition(at)
		if !ok || !t.Instant().Before(end) {
			break
		}
		out = append(out, transition{
			Instant: t.Instant().String(),
			Kind:    t.Kind().String(),
			Before:  fmt.Sprintf("%v %s", t.Before().Offset, t.Before().Designation),
			After:   fmt.Sprintf("%v %s", t.After().Offset, t.After().Designation),
		})
		at = t.Instant()
	}
	return out, nil
}
