package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ngrash/go-tzrules/chrono"
	"github.com/ngrash/go-tzrules/tzdb"
	"github.com/ngrash/go-tzrules/zone"
)

var (
	dirFlag  = flag.String("dir", "", "Zone database directory (default: system database)")
	yearFlag = flag.Int("year", time.Now().Year(), "Print the transitions of this year")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzinfo [-dir <zoneinfo dir>] [-year <year>] <zone id>")
		os.Exit(1)
	}

	db := tzdb.Default()
	if *dirFlag != "" {
		db = tzdb.New(tzdb.Options{Dirs: []string{*dirFlag}})
	}
	z, err := db.Zone(args[0])
	if err != nil {
		fmt.Println("loading zone:", err)
		os.Exit(1)
	}

	printDatabase(db)
	now := time.Now()
	printNow(z, chrono.Unix(now.Unix(), int64(now.Nanosecond())))
	printYear(z, *yearFlag)
}

func printDatabase(db *tzdb.DB) {
	fmt.Println("Database")
	fmt.Println("  root    =", db.Root())
	fmt.Println("  version =", db.Version())
	fmt.Println("  zones   =", len(db.IDs()))
	fmt.Println()
}

func printNow(z zone.Zone, now chrono.Instant) {
	r := z.Rules()
	fmt.Println("Zone", z.ID())
	fmt.Println("  now         =", now)
	fmt.Println("  local       =", z.Local(now))
	fmt.Println("  offset      =", r.Offset(now))
	fmt.Println("  standard    =", r.StandardOffset(now))
	fmt.Println("  dst         =", r.DaylightSavingTime(now))
	fmt.Println("  designation =", r.Designation(now))
	fmt.Println("  fixed       =", r.IsFixedOffset())
	fmt.Println()
}

func printYear(z zone.Zone, year int) {
	if year < chrono.MinYear || year >= chrono.MaxYear {
		fmt.Println("year out of range:", year)
		os.Exit(1)
	}
	r := z.Rules()
	from := chrono.MustLocalDateTime(year, time.January, 1, 0, 0, 0, 0).Instant(chrono.UTC)
	to := chrono.MustLocalDateTime(year+1, time.January, 1, 0, 0, 0, 0).Instant(chrono.UTC)

	fmt.Println("Transitions", year)
	n := 0
	// Start just before the year so a transition at midnight UTC counts.
	at := from.Minus(chrono.Nanoseconds(1))
	for {
		t, ok := r.NextTransition(at)
		if !ok || !t.Instant().Before(to) {
			break
		}
		fmt.Printf("  %v  %-7v %v (%s) -> %v (%s)  local %v .. %v\n",
			t.Instant(), t.Kind(),
			t.Before().Offset, t.Before().Designation,
			t.After().Offset, t.After().Designation,
			t.LocalStart(), t.LocalEnd())
		at = t.Instant()
		n++
	}
	if n == 0 {
		fmt.Println("  none")
	}
	fmt.Println()
}
