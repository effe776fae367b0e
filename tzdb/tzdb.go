// Package tzdb discovers a compiled zone database on disk and loads the
// rules of each zone on first use.
//
// Discovery reads directory listings only. A zone file is read and
// converted the first time its identifier is loaded, and the outcome,
// success or failure, is kept for the lifetime of the DB.
package tzdb

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go4org/hashtriemap"

	"github.com/ngrash/go-tzrules/tzif"
	"github.com/ngrash/go-tzrules/zone"
)

// DefaultDirs are the directories searched when Options.Dirs is empty,
// after $ZONEINFO.
var DefaultDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
	"/etc/zoneinfo",
}

const (
	versionFile = "+VERSION"
	maxLinks    = 8
)

// Options configures a DB.
type Options struct {
	// Dirs are candidate database roots, tried in order. The first one
	// holding at least one zone wins. If empty, $ZONEINFO (when set) and
	// DefaultDirs are used.
	Dirs []string

	// FS is the filesystem Dirs are resolved in. If nil, the host
	// filesystem is used.
	FS billy.Filesystem

	// Logger receives discovery and load diagnostics. If nil,
	// slog.Default() is used.
	Logger *slog.Logger

	// Cache memoizes the yearly transitions of every loaded zone's
	// tail rule. If nil, the DB creates one.
	Cache *zone.TransitionCache
}

// DB is a zone database. It is safe for concurrent use.
type DB struct {
	fs      billy.Filesystem
	logger  *slog.Logger
	cache   *zone.TransitionCache
	root    string
	version string
	ids     []string

	// entries is filled by New before the DB is returned. Load reads it
	// without locks from any number of goroutines.
	entries hashtriemap.HashTrieMap[string, *entry]
}

// entry is the lazily populated cell of one zone. The first published
// result wins; concurrent loaders may parse the same file more than once.
type entry struct {
	path   string
	result atomic.Pointer[loadResult]
}

type loadResult struct {
	rules *zone.RegionRules
	err   error
}

// New discovers a database according to opts. It never fails: when no
// candidate directory holds zones, the failure is logged and the returned
// DB is empty.
func New(opts Options) *DB {
	if opts.FS == nil {
		opts.FS = osfs.New("/")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Cache == nil {
		opts.Cache = zone.NewTransitionCache()
	}
	if len(opts.Dirs) == 0 {
		if dir := os.Getenv("ZONEINFO"); dir != "" {
			opts.Dirs = append(opts.Dirs, dir)
		}
		opts.Dirs = append(opts.Dirs, DefaultDirs...)
	}

	db := &DB{fs: opts.FS, logger: opts.Logger, cache: opts.Cache}
	for _, dir := range opts.Dirs {
		root, err := resolve(db.fs, dir)
		if err != nil {
			db.logger.Warn("tzdb: skipping zone directory", "dir", dir, "error", err)
			continue
		}
		paths, err := discover(db.fs, root)
		if err != nil {
			db.logger.Warn("tzdb: skipping zone directory", "dir", dir, "error", err)
			continue
		}
		db.root = root
		db.version = readVersion(db.fs, root)
		for id, path := range paths {
			db.entries.LoadOrStore(id, &entry{path: path})
			db.ids = append(db.ids, id)
		}
		slices.Sort(db.ids)
		db.logger.Debug("tzdb: discovered zone database", "root", root, "version", db.version, "zones", len(db.ids))
		return db
	}
	db.logger.Warn("tzdb: no usable zone directory", "dirs", opts.Dirs, "error", ErrDatabaseNotFound)
	return db
}

var defaultDB = sync.OnceValue(func() *DB { return New(Options{}) })

// Default returns the process-wide DB over the host's zone database,
// discovering it on the first call.
func Default() *DB { return defaultDB() }

// Root returns the directory the database was found in, or "" if none was.
func (db *DB) Root() string { return db.root }

// Version returns the trimmed contents of the root's +VERSION file, or ""
// when there is none.
func (db *DB) Version() string { return db.version }

// IDs returns the sorted zone identifiers.
func (db *DB) IDs() []string { return slices.Clone(db.ids) }

// Load returns the rules of the zone id. Identifiers the database does not
// list fail with ErrUnknownZone without touching the filesystem. Files that
// cannot be read or converted fail with a *ParseError, and so does every
// later call for the same id.
func (db *DB) Load(id string) (*zone.RegionRules, error) {
	e, ok := db.entries.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}
	if res := e.result.Load(); res != nil {
		return res.rules, res.err
	}
	if !e.result.CompareAndSwap(nil, db.parse(id, e.path)) {
		db.logger.Debug("tzdb: discarded concurrent load", "zone", id)
	}
	res := e.result.Load()
	return res.rules, res.err
}

// Zone returns the zone id with its loaded rules.
func (db *DB) Zone(id string) (zone.Zone, error) {
	rules, err := db.Load(id)
	if err != nil {
		return zone.Zone{}, err
	}
	return zone.New(id, rules), nil
}

func (db *DB) parse(id, path string) *loadResult {
	rules, err := db.read(path)
	if err != nil {
		db.logger.Warn("tzdb: loading zone", "zone", id, "path", path, "error", err)
		return &loadResult{err: &ParseError{ID: id, Err: err}}
	}
	db.logger.Debug("tzdb: loaded zone", "zone", id, "transitions", len(rules.Transitions()))
	return &loadResult{rules: rules}
}

func (db *DB) read(path string) (*zone.RegionRules, error) {
	b, err := util.ReadFile(db.fs, path)
	if err != nil {
		return nil, fmt.Errorf("billy: readfile %q: %w", path, err)
	}
	d, err := tzif.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	rules, err := Rules(d, db.cache)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return rules, nil
}

// resolve follows dir while it is a symbolic link and checks that the
// result is a directory.
func resolve(fs billy.Filesystem, dir string) (string, error) {
	dir = filepath.Clean(dir)
	for range maxLinks {
		fi, err := fs.Lstat(dir)
		if err != nil {
			return "", fmt.Errorf("billy: lstat %q: %w", dir, err)
		}
		if fi.Mode()&os.ModeSymlink == 0 {
			if !fi.IsDir() {
				return "", fmt.Errorf("%s is not a directory", dir)
			}
			return dir, nil
		}
		target, err := fs.Readlink(dir)
		if err != nil {
			return "", fmt.Errorf("billy: readlink %q: %w", dir, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(dir), target)
		}
		dir = filepath.Clean(target)
	}
	return "", fmt.Errorf("%s: too many levels of symbolic links", dir)
}

// discover maps the identifier of every zone file below root to its path.
func discover(fs billy.Filesystem, root string) (map[string]string, error) {
	paths := make(map[string]string)
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if path == root {
			return err
		}
		if err != nil {
			// Unreadable subtrees are left out.
			return nil
		}
		if excluded(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if fi, err := fs.Stat(path); err != nil || fi.IsDir() {
				return nil
			}
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths[filepath.ToSlash(rel)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("billy: walk %q: %w", root, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrDatabaseNotFound, root)
	}
	return paths, nil
}

// excluded reports whether name is metadata rather than a zone: hidden
// files, "+" files, all-lowercase names such as "posix" or "leapseconds",
// and names with an extension such as "zone.tab".
func excluded(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "+") ||
		strings.ToLower(name) == name ||
		filepath.Ext(name) != ""
}

func readVersion(fs billy.Filesystem, root string) string {
	b, err := util.ReadFile(fs, filepath.Join(root, versionFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
