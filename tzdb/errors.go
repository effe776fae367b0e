package tzdb

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownZone is returned for identifiers the database does not list.
	ErrUnknownZone = errors.New("tzdb: unknown zone")
	// ErrDatabaseNotFound is logged when no candidate directory holds zones.
	ErrDatabaseNotFound = errors.New("tzdb: no zone database found")
)

// ParseError reports a zone file that could not be turned into rules.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tzdb: zone %q: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
