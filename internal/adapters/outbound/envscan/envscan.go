// Package envscan discovers .env-style files and folds them into a single
// classified variable mapping.
package envscan

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kubefold/kubefold/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// Scanner implements domain.EnvScanner by walking the filesystem.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

// Scan walks root for files matching .env* (excluding *.example), parses each
// as dotenv KEY=VALUE lines, and classifies every key. Files are visited in
// walk order and later files win on duplicate keys. A missing root is not an
// error; the result is simply empty.
func (s *Scanner) Scan(root string, secretKeywords []string) (domain.EnvSet, error) {
	set := domain.EnvSet{}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if isEnvFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, err
	}
	sort.Strings(files)

	for _, path := range files {
		if err := parseInto(set, path, root, secretKeywords); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func isEnvFile(name string) bool {
	return strings.HasPrefix(name, ".env") && !strings.HasSuffix(name, ".example")
}

func parseInto(set domain.EnvSet, path, root string, secretKeywords []string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rel, relErr := filepath.Rel(root, path)
	if relErr != nil {
		rel = path
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		set[key] = domain.EnvVariable{
			Name:           key,
			Value:          unquote(strings.TrimSpace(value)),
			Classification: domain.Classify(key, secretKeywords),
			SourceFile:     rel,
		}
	}
	return sc.Err()
}

// unquote strips a single layer of matching surrounding quotes.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first == last && (first == '"' || first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
