package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

var entryHeaderRE = regexp.MustCompile(`(?m)^--- (\d{4}-\d{2}-\d{2}) ---$`)

// MonthlyName returns the monthly log path for a daily journal name.
func MonthlyName(daily string) string {
	month := strings.TrimSuffix(path.Base(daily), ".txt")
	if len(month) > 7 {
		month = month[:7]
	}
	return path.Join(MonthlyDir, month+".txt")
}

// EntryHeader is the line that opens a day's entry in the monthly log.
func EntryHeader(day string) string {
	return "--- " + day + " ---"
}

// Rollup copies the content of daily journal name into its monthly log,
// replacing that day's entry when present. Non-journal names are ignored.
func Rollup(files Files, name, content string) error {
	if !IsDaily(name) {
		return nil
	}
	monthly := MonthlyName(name)
	current, err := files.ReadFile(monthly)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read monthly log %s: %w", monthly, err)
	}

	day := strings.TrimSuffix(path.Base(name), ".txt")
	if err := files.WriteFile(monthly, MergeEntry(current, day, content)); err != nil {
		return fmt.Errorf("write monthly log %s: %w", monthly, err)
	}
	return nil
}

type logEntry struct {
	day  string
	body string
}

// MergeEntry returns log with the entry for day set to content. Existing
// entries keep their order; a new day is appended after a blank line. The
// result has no leading newlines and ends with exactly one.
func MergeEntry(log, day, content string) string {
	preamble, entries := splitEntries(log)

	body := strings.Trim(content, "\n")
	found := false
	for i := range entries {
		if entries[i].day == day {
			entries[i].body = body
			found = true
		}
	}
	if !found {
		entries = append(entries, logEntry{day: day, body: body})
	}

	parts := make([]string, 0, len(entries)+1)
	if p := strings.Trim(preamble, "\n"); strings.TrimSpace(p) != "" {
		parts = append(parts, p)
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.day] {
			continue
		}
		seen[e.day] = true
		parts = append(parts, EntryHeader(e.day)+"\n\n"+e.body)
	}
	return strings.Trim(strings.Join(parts, "\n\n"), "\n") + "\n"
}

func splitEntries(log string) (string, []logEntry) {
	locs := entryHeaderRE.FindAllStringSubmatchIndex(log, -1)
	if len(locs) == 0 {
		return log, nil
	}
	preamble := log[:locs[0][0]]
	entries := make([]logEntry, 0, len(locs))
	for i, loc := range locs {
		end := len(log)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		entries = append(entries, logEntry{
			day:  log[loc[2]:loc[3]],
			body: strings.Trim(log[loc[1]:end], "\n"),
		})
	}
	return preamble, entries
}
