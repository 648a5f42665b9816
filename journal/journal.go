// Package journal implements the daily journal conventions: one file per
// day named YYYY-MM-DD.txt, a timestamp line for every writing session and a
// monthly log that collects each day's entry.
package journal

import (
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/iw2rmb/inkwell/editor"
)

const (
	// MonthlyDir holds the monthly logs, relative to the projects directory.
	MonthlyDir = "MonthlyLogs"

	dayLayout     = "2006-01-02"
	monthLayout   = "2006-01"
	headingLayout = "January 02, 2006"
	stampLayout   = "03:04pm"
)

var (
	dailyRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.txt$`)
	stampRE = regexp.MustCompile(`^--- \d{2}:\d{2}[ap]m ---$`)
)

// Files is the storage the journal reads and writes through.
type Files interface {
	ReadFile(name string) (string, error)
	WriteFile(name, text string) error
}

// DailyName returns the journal file name for the day of t.
func DailyName(t time.Time) string {
	return t.Format(dayLayout) + ".txt"
}

// IsDaily reports whether name (or its base) is a daily journal file.
func IsDaily(name string) bool {
	return dailyRE.MatchString(path.Base(name))
}

// Heading is the first line of a new journal, e.g. "March 09, 2024".
func Heading(t time.Time) string {
	return t.Format(headingLayout)
}

// SessionStamp marks the start of a writing session, e.g. "--- 02:05pm ---".
func SessionStamp(t time.Time) string {
	return "--- " + t.Format(stampLayout) + " ---"
}

// IsStamp reports whether line is a session stamp.
func IsStamp(line string) bool {
	return stampRE.MatchString(strings.TrimSpace(line))
}

// BeginSession prepares the lines of a journal for a new writing session.
// A new journal gets the date heading; an existing one gets a fresh stamp
// unless its last line already is one.
func BeginSession(lines []string, created bool, now time.Time) []string {
	if created || isBlank(lines) {
		return []string{Heading(now), "", SessionStamp(now), ""}
	}
	if IsStamp(lines[len(lines)-1]) {
		return lines
	}
	return append(lines, "", SessionStamp(now), "")
}

// Hooks wires the session stamp and the monthly rollup into an editing session.
func Hooks(files Files) editor.Hooks {
	return editor.Hooks{
		OnOpen: BeginSession,
		AfterSave: func(name, text string, _ time.Time) error {
			return Rollup(files, name, text)
		},
	}
}

func isBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}
