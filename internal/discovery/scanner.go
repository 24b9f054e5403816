package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner lists files produced inside a workspace
type Scanner struct {
	skipFiles map[string]bool
}

// NewScanner creates a new Scanner ignoring the given file names
func NewScanner(skipFiles []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, name := range skipFiles {
		skipMap[name] = true
	}
	return &Scanner{skipFiles: skipMap}
}

// Scan finds all regular files under root, sorted by path.
// Hidden directories and skipped file names are left out.
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("workspace does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || s.skipFiles[d.Name()] {
			return nil
		}
		files = append(files, path)
		return nil
	})

	sort.Strings(files)
	return files, err
}
