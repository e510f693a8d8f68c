package application

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

// FixService orchestrates the fix pipeline:
// config → scan → git guard → parse → check → apply → print → write back.
type FixService struct {
	scanner      domain.SourceScanner
	parser       domain.SourceParser
	printer      domain.SourcePrinter
	configLoader domain.ConfigLoader
	detector     domain.BuildDetector
	git          domain.GitInfo
	history      domain.RunHistory
}

func NewFixService(
	scanner domain.SourceScanner,
	parser domain.SourceParser,
	printer domain.SourcePrinter,
	configLoader domain.ConfigLoader,
	detector domain.BuildDetector,
	git domain.GitInfo,
	history domain.RunHistory,
) *FixService {
	return &FixService{
		scanner:      scanner,
		parser:       parser,
		printer:      printer,
		configLoader: configLoader,
		detector:     detector,
		git:          git,
		history:      history,
	}
}

type fixedFile struct {
	applied []domain.AppliedFix
	failed  []domain.FailedFix
	changed bool
	err     *domain.FileError
}

func (s *FixService) Fix(ctx context.Context, projectPath string, opts domain.FixOptions) (*domain.FixResult, error) {
	start := time.Now()

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

	result := &domain.FixResult{
		RootPath:     root,
		DryRun:       opts.DryRun,
		Applied:      []domain.AppliedFix{},
		Failed:       []domain.FailedFix{},
		FilesChanged: []string{},
	}

	build, err := s.detector.Detect(scan)
	if err != nil {
		return nil, errors.Errorf("detecting build: %w", err)
	}
	if w := jupiterWarning(build, inspections); w != "" {
		result.Warnings = append(result.Warnings, w)
	}

	var dirty map[string]bool
	if s.git.IsGitRepo(root) {
		if hash, err := s.git.CommitHash(root); err == nil {
			result.CommitHash = hash
		}
		if !opts.AllowDirty {
			dirty, err = s.git.DirtyFiles(root)
			if err != nil {
				return nil, errors.Errorf("reading git status: %w", err)
			}
		}
	}

	results := make([]fixedFile, len(scan.JavaFiles))
	err = forEachFile(ctx, scan.JavaFiles, cfg.Jobs, func(ctx context.Context, i int, rel string) error {
		results[i] = s.fixFile(ctx, root, rel, dirty[rel], inspections, opts.DryRun)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("fixing files: %w", err)
	}

	for i, r := range results {
		result.Applied = append(result.Applied, r.applied...)
		result.Failed = append(result.Failed, r.failed...)
		if r.err != nil {
			result.FileErrors = append(result.FileErrors, *r.err)
		}
		if r.changed {
			result.FilesChanged = append(result.FilesChanged, scan.JavaFiles[i])
		}
	}
	result.Duration = time.Since(start)

	if !opts.DryRun {
		entry := domain.RunEntry{
			Timestamp:    time.Now(),
			CommitHash:   result.CommitHash,
			Applied:      len(result.Applied),
			Failed:       len(result.Failed),
			FilesChanged: result.FilesChanged,
		}
		if err := s.history.Save(root, entry); err != nil {
			fileLogger(ctx, ".expectfix/history").Warn().Err(err).Msg("saving run history")
		}
	}
	return result, nil
}

func (s *FixService) fixFile(ctx context.Context, root, rel string, readOnly bool, inspections []domain.Inspection, dryRun bool) fixedFile {
	log := fileLogger(ctx, rel)
	path := absFile(root, rel)

	src, err := os.ReadFile(path)
	if err != nil {
		return fixedFile{err: &domain.FileError{File: rel, Message: err.Error()}}
	}
	unit, err := s.parser.Parse(rel, src)
	if err != nil {
		log.Warn().Err(err).Msg("skipping file")
		return fixedFile{err: &domain.FileError{File: rel, Message: err.Error()}}
	}
	unit.ReadOnly = readOnly

	var out fixedFile
	for _, in := range inspections {
		for _, p := range in.Check(unit) {
			if p.Fix == nil {
				log.Debug().Str("method", p.Method).Int("line", p.Line).Str("inspection", p.Inspection).
					Msg(p.Message)
				continue
			}
			if err := p.Fix.Apply(unit); err != nil {
				if readOnly {
					err = errors.Errorf("file has uncommitted changes (use --allow-dirty): %w", err)
				}
				log.Error().Err(err).
					Str("method", p.Method).
					Int("line", p.Line).
					Str("inspection", p.Inspection).
					Msg("fix not applied")
				out.failed = append(out.failed, domain.FailedFix{
					Inspection: p.Inspection,
					File:       rel,
					Line:       p.Line,
					Method:     p.Method,
					Kind:       domain.ErrorKind(err),
					Error:      err.Error(),
				})
				continue
			}
			out.applied = append(out.applied, domain.AppliedFix{
				Inspection:  p.Inspection,
				File:        rel,
				Line:        p.Line,
				Method:      p.Method,
				Description: p.FixName,
			})
		}
	}

	if !unit.Modified() {
		return out
	}

	printed, err := s.printer.Print(unit)
	if err != nil {
		log.Error().Err(err).Msg("printing rewritten file")
		// nothing reaches disk, so nothing counts as applied
		for _, a := range out.applied {
			out.failed = append(out.failed, domain.FailedFix{
				Inspection: a.Inspection, File: a.File, Line: a.Line, Method: a.Method,
				Kind: domain.ErrorKind(err), Error: err.Error(),
			})
		}
		out.applied = nil
		out.err = &domain.FileError{File: rel, Message: err.Error()}
		return out
	}
	out.changed = true

	if dryRun {
		return out
	}
	if err := os.WriteFile(path, printed, fileMode(path)); err != nil {
		out.err = &domain.FileError{File: rel, Message: errors.Errorf("writing file: %w", err).Error()}
		out.changed = false
		return out
	}
	log.Info().Int("fixes", len(out.applied)).Msg("file rewritten")
	return out
}
