package domain

import (
	"path"
	"strings"
)

// SourceScanner finds the source files of a project.
type SourceScanner interface {
	Scan(projectPath string, include, exclude []string) (*ScanResult, error)
}

// ScanResult holds the result of scanning a project directory.
type ScanResult struct {
	RootPath    string   `json:"root_path"`
	JavaFiles   []string `json:"java_files"`
	BuildFiles  []string `json:"build_files,omitempty"`
	HasGitDir   bool     `json:"has_git_dir"`
	HasConfig   bool     `json:"has_config"`
	SkippedDirs int      `json:"skipped_dirs"`
}

var buildFileNames = map[string]bool{
	"pom.xml":          true,
	"build.gradle":     true,
	"build.gradle.kts": true,
}

// AddFile classifies a slash-separated relative path as Java source or
// build file. Anything else is ignored.
func (s *ScanResult) AddFile(rel string) {
	switch {
	case strings.HasSuffix(rel, ".java"):
		s.JavaFiles = append(s.JavaFiles, rel)
	case buildFileNames[path.Base(rel)]:
		s.BuildFiles = append(s.BuildFiles, rel)
	}
}

// SourceParser turns source text into a compilation unit.
type SourceParser interface {
	Parse(path string, src []byte) (*CompilationUnit, error)
}

// SourcePrinter serializes a compilation unit, re-rendering only what
// changed since it was parsed.
type SourcePrinter interface {
	Print(unit *CompilationUnit) ([]byte, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// GitInfo answers questions about the project's git state.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	DirtyFiles(projectPath string) (map[string]bool, error)
}

// BuildDetector inspects build files of a scanned project.
type BuildDetector interface {
	Detect(scan *ScanResult) (*BuildInfo, error)
}

// BuildInfo describes what the build declares.
type BuildInfo struct {
	Tool       string `json:"tool"` // maven, gradle or none
	File       string `json:"file,omitempty"`
	HasJUnit4  bool   `json:"has_junit4"`
	HasJupiter bool   `json:"has_jupiter"`
}

// CacheStore persists inspection results between runs.
type CacheStore interface {
	Load(projectPath string) (*InspectCache, error)
	Save(projectPath string, cache *InspectCache) error
	Invalidate(projectPath string) error
}

// RunHistory persists fix runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
