// Package dockerscan discovers Dockerfiles and derives one service unit per
// owning directory.
package dockerscan

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kubefold/kubefold/internal/domain"
)

// DefaultPort is assumed when a Dockerfile carries no EXPOSE directive.
const DefaultPort = 8000

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// Scanner implements domain.UnitScanner.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

// Scan walks root for Dockerfiles (case-insensitive, Dockerfile.* suffixes
// included) and derives a ServiceUnit per owning directory. Units come back
// sorted by name. Zero matches is not an error here; the synthesizer decides
// that an empty unit list is fatal.
func (s *Scanner) Scan(root, projectName string) ([]domain.ServiceUnit, error) {
	var units []domain.ServiceUnit

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
		if !isDockerfile(d.Name()) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		dir := filepath.Dir(rel)
		port, portErr := inferPort(path)
		if portErr != nil {
			return portErr
		}

		units = append(units, domain.ServiceUnit{
			Dir:        dir,
			Dockerfile: rel,
			Name:       domain.UnitName(projectName, dir),
			Port:       port,
			CLI:        strings.Contains(strings.ToLower(filepath.Base(dir)), "cli"),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

func isDockerfile(name string) bool {
	lower := strings.ToLower(name)
	return lower == "dockerfile" || strings.HasPrefix(lower, "dockerfile.")
}

// inferPort returns the first EXPOSE port in the Dockerfile, or DefaultPort
// when none is present.
func inferPort(path string) (int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || !strings.EqualFold(fields[0], "EXPOSE") {
			continue
		}
		// EXPOSE may carry a protocol suffix (8080/tcp); only the port
		// number matters here.
		portStr, _, _ := strings.Cut(fields[1], "/")
		port, convErr := strconv.ParseInt(portStr, 10, 32)
		if convErr != nil {
			continue
		}
		return int32(port), nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return DefaultPort, nil
}
