// core/idlist/idlist.go
package idlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Set is a collection of identifiers for membership tests.
type Set map[string]struct{}

// Contains reports whether id is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Parse reads one identifier per line from r. Lines starting with '#' are
// comments (tested on the raw line, before stripping). Remaining lines are
// trimmed of surrounding whitespace; empties are discarded; duplicates
// collapse.
func Parse(r io.Reader) (Set, error) {
	ids := make(Set)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		ids[id] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Load parses the identifier-list file at path.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ids, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ids, nil
}
