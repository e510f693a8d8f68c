package application

import (
	"context"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// InspectService orchestrates the inspection pipeline:
// config → scan → detect build → parse files in parallel → run inspections.
type InspectService struct {
	scanner      domain.SourceScanner
	parser       domain.SourceParser
	configLoader domain.ConfigLoader
	detector     domain.BuildDetector
	cache        domain.CacheStore
}

func NewInspectService(
	scanner domain.SourceScanner,
	parser domain.SourceParser,
	configLoader domain.ConfigLoader,
	detector domain.BuildDetector,
	cache domain.CacheStore,
) *InspectService {
	return &InspectService{
		scanner:      scanner,
		parser:       parser,
		configLoader: configLoader,
		detector:     detector,
		cache:        cache,
	}
}

type inspectedFile struct {
	issues []domain.Issue
	err    *domain.FileError
	cached bool
	hash   string
}

func (s *InspectService) Inspect(ctx context.Context, projectPath string, opts domain.InspectOptions) (*domain.InspectReport, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, errors.Errorf("resolving path: %w", err)
	}

	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	inspections, err := BuildInspections(cfg, opts.Only)
	if err != nil {
		return nil, err
	}

	scan, err := s.scanner.Scan(root, cfg.Include, cfg.ExcludePaths)
	if err != nil {
		return nil, errors.Errorf("scanning project: %w", err)
	}

	report := &domain.InspectReport{RootPath: root, FilesScanned: len(scan.JavaFiles), Issues: []domain.Issue{}}

	build, err := s.detector.Detect(scan)
	if err != nil {
		return nil, errors.Errorf("detecting build: %w", err)
	}
	if w := jupiterWarning(build, inspections); w != "" {
		report.Warnings = append(report.Warnings, w)
	}

	hash := configHash(cfg, opts.Only)
	cache := s.loadCache(ctx, root, hash, opts.NoCache)

	results := make([]inspectedFile, len(scan.JavaFiles))
	err = forEachFile(ctx, scan.JavaFiles, cfg.Jobs, func(ctx context.Context, i int, rel string) error {
		results[i] = s.inspectFile(ctx, root, rel, inspections, cache)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("inspecting files: %w", err)
	}

	for i, r := range results {
		rel := scan.JavaFiles[i]
		switch {
		case r.err != nil:
			report.FileErrors = append(report.FileErrors, *r.err)
			cache.Forget(rel)
		case r.cached:
			report.FilesCached++
		case len(r.issues) == 0:
			cache.MarkClean(rel, r.hash)
		default:
			report.Issues = append(report.Issues, r.issues...)
			cache.Forget(rel)
		}
	}

	if !opts.NoCache {
		if err := s.cache.Save(root, cache); err != nil {
			fileLogger(ctx, ".expectfix/cache").Warn().Err(err).Msg("saving inspect cache")
		}
	}
	return report, nil
}

func (s *InspectService) loadCache(ctx context.Context, root, hash string, disabled bool) *domain.InspectCache {
	if disabled {
		return domain.NewInspectCache(hash)
	}
	cache, err := s.cache.Load(root)
	if err != nil {
		fileLogger(ctx, ".expectfix/cache").Warn().Err(err).Msg("ignoring unreadable inspect cache")
		return domain.NewInspectCache(hash)
	}
	if cache == nil || cache.IsInvalidated(hash) {
		return domain.NewInspectCache(hash)
	}
	return cache
}

// inspectFile only reads cache; the caller updates it after all files ran.
func (s *InspectService) inspectFile(ctx context.Context, root, rel string, inspections []domain.Inspection, cache *domain.InspectCache) inspectedFile {
	log := fileLogger(ctx, rel)

	src, err := os.ReadFile(absFile(root, rel))
	if err != nil {
		return inspectedFile{err: &domain.FileError{File: rel, Message: err.Error()}}
	}
	h := contentHash(src)
	if cache.IsClean(rel, h) {
		log.Debug().Msg("unchanged since last clean inspection")
		return inspectedFile{cached: true, hash: h}
	}

	unit, err := s.parser.Parse(rel, src)
	if err != nil {
		log.Warn().Err(err).Msg("skipping file")
		return inspectedFile{err: &domain.FileError{File: rel, Message: err.Error()}}
	}

	var issues []domain.Issue
	for _, in := range inspections {
		for _, p := range in.Check(unit) {
			issues = append(issues, p.Issue)
		}
	}
	log.Debug().Int("issues", len(issues)).Msg("inspected")
	return inspectedFile{issues: issues, hash: h}
}
