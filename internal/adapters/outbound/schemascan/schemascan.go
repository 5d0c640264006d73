// Package schemascan locates the project's SQL initialization script.
package schemascan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kubefold/kubefold/internal/domain"
)

// maxDepth bounds the search below the project root. Init scripts live at
// the root or one directory down (db/, sql/, migrations/); deeper matches
// are almost always fixtures.
const maxDepth = 2

// Scanner implements domain.SchemaScanner.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

// Scan searches up to two directory levels for init.sql or any *.sql file
// and returns the first match in scan order, init.sql candidates first.
// Zero matches and a missing root both return (nil, nil).
func (s *Scanner) Scan(root string) (*domain.SchemaFile, error) {
	var initFiles, sqlFiles []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		depth := strings.Count(rel, string(filepath.Separator))
		if d.IsDir() {
			if depth >= maxDepth || d.Name() == ".git" || d.Name() == "node_modules" || d.Name() == "vendor" {
				if rel != "." {
					return filepath.SkipDir
				}
			}
			return nil
		}
		switch {
		case d.Name() == "init.sql":
			initFiles = append(initFiles, path)
		case strings.HasSuffix(d.Name(), ".sql"):
			sqlFiles = append(sqlFiles, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	sort.Strings(initFiles)
	sort.Strings(sqlFiles)
	candidates := append(initFiles, sqlFiles...)
	if len(candidates) == 0 {
		return nil, nil
	}

	first := candidates[0]
	content, err := os.ReadFile(first)
	if err != nil {
		return nil, err
	}
	rel, relErr := filepath.Rel(root, first)
	if relErr != nil {
		rel = first
	}
	return &domain.SchemaFile{Path: rel, Content: string(content)}, nil
}
