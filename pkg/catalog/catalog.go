// Package catalog loads the authoritative course catalog from a
// line-delimited source: one course abbreviation per line, order
// significant (the binning tie-break follows it).
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/learningcommons/coverage/pkg/core/schedule"
)

// Load reads a catalog from a line-delimited reader. Entries are trimmed
// and blank lines dropped, so degenerate entries never reach the matching
// layer. An empty resulting catalog is an error.
func Load(r io.Reader) ([]schedule.CourseInfo, error) {
	var catalog []schedule.CourseInfo

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		catalog = append(catalog, schedule.NewCourseInfo(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	return catalog, nil
}

// LoadFile reads a catalog from the file at path
func LoadFile(path string) ([]schedule.CourseInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	catalog, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return catalog, nil
}
