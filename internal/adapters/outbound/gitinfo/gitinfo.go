package gitinfo

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"gitlab.com/tozd/go/errors"
)

// GitInfoAdapter implements domain.GitInfo using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", errors.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", errors.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// DirtyFiles returns files with staged, unstaged or untracked changes, as
// slash paths relative to projectPath. Files outside projectPath are left
// out.
func (g *GitInfoAdapter) DirtyFiles(projectPath string) (map[string]bool, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, errors.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.Errorf("reading status: %w", err)
	}

	absProject, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", projectPath, err)
	}
	root := wt.Filesystem.Root()

	dirty := make(map[string]bool)
	for path, st := range status {
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}
		rel, err := filepath.Rel(absProject, filepath.Join(root, filepath.FromSlash(path)))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		dirty[filepath.ToSlash(rel)] = true
	}
	return dirty, nil
}
