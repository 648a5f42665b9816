// Package store keeps documents as plain text files under the projects
// directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/iw2rmb/inkwell/journal"
	"pkt.systems/pslog"
)

// ErrOutsideRoot rejects names that escape the projects directory.
var ErrOutsideRoot = errors.New("store: path outside projects directory")

const (
	// InitFlag marks a projects directory that already received its defaults.
	InitFlag = ".initialized"
	// DefaultProject is created on first run next to the day's journal.
	DefaultProject = "Project One.txt"
)

var monthlyRE = regexp.MustCompile(`^\d{4}-\d{2}\.txt$`)

// Store reads and writes documents relative to its root.
type Store struct {
	root string
	log  pslog.Logger
}

// New opens a store at root, creating the directory when needed. logger may be nil.
func New(root string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("projects directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("projects_dir", abs)
	}
	return &Store{root: abs, log: logger}, nil
}

// Root is the absolute projects directory.
func (s *Store) Root() string { return s.root }

// Path resolves a slash-separated document name to a filesystem path.
func (s *Store) Path(name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || clean == "." || !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// ReadFile returns the text of name. A missing document matches fs.ErrNotExist.
func (s *Store) ReadFile(name string) (string, error) {
	p, err := s.Path(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && s.log != nil {
			s.log.Debug("document load miss", "doc", name)
		}
		return "", err
	}
	return string(data), nil
}

// WriteFile replaces name with text. The write goes to a temp file that is
// renamed over the target, so readers never see a partial document.
func (s *Store) WriteFile(name, text string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := writeAtomic(p, []byte(text)); err != nil {
		if s.log != nil {
			s.log.Warn("document save failed", "doc", name, "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Trace("document save ok", "doc", name, "bytes", len(text))
	}
	return nil
}

// Exists reports whether name is a regular file in the store.
func (s *Store) Exists(name string) bool {
	p, err := s.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func writeAtomic(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".save-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// EnsureDefaults seeds a fresh projects directory with the day's journal and
// an empty project. It reports whether anything was created; once the
// init flag exists it does nothing.
func (s *Store) EnsureDefaults(now time.Time) (bool, error) {
	if s.Exists(InitFlag) {
		return false, nil
	}
	if s.log != nil {
		s.log.Info("first run detected, creating default files")
	}
	daily := journal.DailyName(now)
	if !s.Exists(daily) {
		if err := s.WriteFile(daily, journal.Heading(now)+"\n"); err != nil {
			return false, fmt.Errorf("create journal: %w", err)
		}
	}
	if !s.Exists(DefaultProject) {
		if err := s.WriteFile(DefaultProject, ""); err != nil {
			return false, fmt.Errorf("create default project: %w", err)
		}
	}
	if err := s.WriteFile(InitFlag, "1"); err != nil {
		return false, fmt.Errorf("write init flag: %w", err)
	}
	return true, nil
}

// Listing groups the text files of a store, newest name first in each group.
type Listing struct {
	Monthly  []string `json:"monthly"`
	Daily    []string `json:"daily"`
	Projects []string `json:"projects"`
}

// Len is the total number of files listed.
func (l Listing) Len() int { return len(l.Monthly) + len(l.Daily) + len(l.Projects) }

// List returns the .txt files at the root and the monthly logs under
// journal.MonthlyDir. Names are slash-separated and relative to the root.
func (s *Store) List() (Listing, error) {
	var out Listing
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return out, fmt.Errorf("list %s: %w", s.root, err)
	}
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		switch {
		case monthlyRE.MatchString(name):
			out.Monthly = append(out.Monthly, name)
		case journal.IsDaily(name):
			out.Daily = append(out.Daily, name)
		default:
			out.Projects = append(out.Projects, name)
		}
	}

	monthly, err := os.ReadDir(filepath.Join(s.root, journal.MonthlyDir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return out, fmt.Errorf("list %s: %w", journal.MonthlyDir, err)
	}
	for _, e := range monthly {
		if e.Type().IsRegular() && monthlyRE.MatchString(e.Name()) {
			out.Monthly = append(out.Monthly, path.Join(journal.MonthlyDir, e.Name()))
		}
	}

	for _, group := range [][]string{out.Monthly, out.Daily, out.Projects} {
		sort.Sort(sort.Reverse(sort.StringSlice(group)))
	}
	return out, nil
}
