package ingest

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DiscoverTests lists, sorted, the names of the regular files directly in root whose name
// contains pattern.
func DiscoverTests(root, pattern string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list tests in %q", root)
	}
	var tests []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.Contains(e.Name(), pattern) {
			continue
		}
		tests = append(tests, e.Name())
	}
	sort.Strings(tests)
	return tests, nil
}
