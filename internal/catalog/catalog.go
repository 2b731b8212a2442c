// internal/catalog/catalog.go
//
// Seed-pool management for the game engine.
//
// Responsibilities:
//   - Load the list of playable sequence identifiers from an operator-provided
//     file or fall back to the embedded default pool.
//   - Normalize and validate identifiers (OEIS A-numbers).
//   - Supply utility functions like IDs and Stats.
//
// Initialization behavior (Init):
//   1. If a path is given, load identifiers from that file.
//   2. Otherwise, fall back to the embedded pool from `assets/pool.txt`.
//
// Constraints:
//   • Identifiers must look like "A" followed by digits (e.g. A000045).
//   • Lists are normalized to uppercase.
//   • Initialization is run once (sync.Once).

package catalog

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/totototosssss/num/assets"
)

var (
	initOnce   sync.Once
	ids        []string
	initialErr error
)

// Init loads the identifier pool exactly once.
// Returns an error if the pool ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		var list []string
		if path != "" {
			var err error
			list, err = readIDFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			embedded, err := assets.PoolList()
			if err != nil {
				initialErr = err
				return
			}
			list = normalize(embedded)
		}

		ids = list
		if len(ids) == 0 {
			initialErr = errors.New("catalog: identifier pool is empty")
		}
	})
	return initialErr
}

// readIDFile loads one identifier per line from a file,
// skipping blanks and comments, and keeps only valid A-numbers.
func readIDFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return normalize(lines), sc.Err()
}

// normalize trims, uppercases, and filters a raw line list down to
// valid sequence identifiers.
func normalize(lines []string) []string {
	var out []string
	for _, line := range lines {
		id := strings.ToUpper(strings.TrimSpace(line))
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		if IsValidID(id) {
			out = append(out, id)
		}
	}
	return out
}

// IsValidID reports whether s is an OEIS A-number: "A" followed by digits.
func IsValidID(s string) bool {
	if len(s) < 2 || s[0] != 'A' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IDs returns a fresh copy of the identifier pool, safe for callers to
// consume destructively (the game engine shrinks its copy as it draws).
func IDs() []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Stats returns the number of loaded identifiers.
func Stats() int {
	return len(ids)
}
