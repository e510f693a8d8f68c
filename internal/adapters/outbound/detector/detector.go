package detector

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// BuildDetector implements domain.BuildDetector for Maven and Gradle
// projects. Dependencies are found by plain text search, which is enough to
// tell whether JUnit 4 and Jupiter are declared anywhere in the build.
type BuildDetector struct{}

func New() *BuildDetector {
	return &BuildDetector{}
}

var jupiterMarkers = []string{"junit-jupiter", "org.junit.jupiter"}

var junit4Markers = []string{
	"<artifactId>junit</artifactId>",
	"junit:junit:",
	`"junit:junit`,
	"'junit:junit",
}

func (d *BuildDetector) Detect(scan *domain.ScanResult) (*domain.BuildInfo, error) {
	info := &domain.BuildInfo{Tool: "none"}
	if len(scan.BuildFiles) == 0 {
		return info, nil
	}

	files := append([]string(nil), scan.BuildFiles...)
	// Root build file first, then by path.
	sort.Slice(files, func(i, j int) bool {
		di, dj := strings.Count(files[i], "/"), strings.Count(files[j], "/")
		if di != dj {
			return di < dj
		}
		return files[i] < files[j]
	})

	info.File = files[0]
	info.Tool = toolFor(files[0])

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(scan.RootPath, filepath.FromSlash(f)))
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", f, err)
		}
		content := string(data)
		if containsAny(content, jupiterMarkers) {
			info.HasJupiter = true
		}
		if containsAny(content, junit4Markers) {
			info.HasJUnit4 = true
		}
	}
	return info, nil
}

func toolFor(file string) string {
	if path.Base(file) == "pom.xml" {
		return "maven"
	}
	return "gradle"
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
