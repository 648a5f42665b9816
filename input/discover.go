package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ByIDDir is where udev publishes stable keyboard links.
const ByIDDir = "/dev/input/by-id"

// ErrNoKeyboard reports that discovery found no keyboard device.
var ErrNoKeyboard = errors.New("input: no keyboard found")

// Discover returns the best keyboard device under dir. Names ending in
// "-event-kbd" win over other "-kbd" or "keyboard" links.
func Discover(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoKeyboard
		}
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}
	var preferred, others []string
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if e.IsDir() || !(strings.Contains(name, "keyboard") || strings.HasSuffix(name, "-kbd")) {
			continue
		}
		full := filepath.Join(dir, e.Name())
		if strings.HasSuffix(name, "-event-kbd") {
			preferred = append(preferred, full)
		} else {
			others = append(others, full)
		}
	}
	sort.Strings(preferred)
	sort.Strings(others)
	if all := append(preferred, others...); len(all) > 0 {
		return all[0], nil
	}
	return "", ErrNoKeyboard
}
