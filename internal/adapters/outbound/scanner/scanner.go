package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	".gradle":      true,
	".idea":        true,
	".expectfix":   true,
	"node_modules": true,
	"target":       true,
	"build":        true,
	"out":          true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects Java sources matching include and the build files of the
// project. exclude entries are directory names, path prefixes or doublestar
// patterns.
func (s *FileScanner) Scan(projectPath string, include, exclude []string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", projectPath, err)
	}
	if len(include) == 0 {
		include = []string{"**/*.java"}
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absPath {
			return nil
		}

		rel, _ := filepath.Rel(absPath, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] || excluded(rel, d.Name(), exclude) {
				result.SkippedDirs++
				return filepath.SkipDir
			}
			return nil
		}

		isRoot := !strings.Contains(rel, "/")
		switch {
		case d.Name() == ".expectfix.yaml" && isRoot:
			result.HasConfig = true
		case strings.HasSuffix(rel, ".java"):
			if excluded(rel, d.Name(), exclude) || !matchesAny(include, rel) {
				return nil
			}
		}
		result.AddFile(rel)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", absPath, err)
	}

	if info, statErr := os.Stat(filepath.Join(absPath, ".git")); statErr == nil && info.IsDir() {
		result.HasGitDir = true
	}
	return result, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func excluded(rel, name string, exclude []string) bool {
	for _, e := range exclude {
		e = strings.TrimSuffix(e, "/")
		if e == "" {
			continue
		}
		if e == name || e == rel || strings.HasPrefix(rel, e+"/") {
			return true
		}
		if ok, _ := doublestar.Match(e, rel); ok {
			return true
		}
	}
	return false
}
