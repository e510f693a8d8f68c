package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/expectfix/internal/domain"
)

// forEachFile runs fn for every file with at most jobs running at once.
// fn must only write to its own index of any shared slice.
func forEachFile(ctx context.Context, files []string, jobs int, fn func(ctx context.Context, i int, rel string) error) error {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, rel := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i, rel)
		})
	}
	return g.Wait()
}

func absFile(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// configHash identifies the settings an inspection result depends on.
func configHash(cfg domain.Config, only []string) string {
	data, _ := json.Marshal(struct {
		Config domain.Config
		Only   []string
	}{cfg, only})
	return contentHash(data)
}

func fileLogger(ctx context.Context, rel string) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Str("file", rel).Logger()
	return &l
}

func fileMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0o644
	}
	return info.Mode().Perm()
}
