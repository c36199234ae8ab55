package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/archlint/archlint/internal/domain"
)

// GitAdapter implements domain.ChangeProvider using go-git. Every method
// tolerates non-repositories: provenance fields come back empty and
// ChangedFiles reports an error the caller can surface.
type GitAdapter struct{}

func New() *GitAdapter {
	return &GitAdapter{}
}

func (g *GitAdapter) CommitHash(projectPath string) string {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}

func (g *GitAdapter) Branch(projectPath string) string {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}

// ChangedFiles returns the worktree-relative paths of files that differ from
// HEAD: modified, added, renamed, and untracked.
func (g *GitAdapter) ChangedFiles(projectPath string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var changed []string
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		changed = append(changed, path)
	}
	return changed, nil
}

var _ domain.ChangeProvider = (*GitAdapter)(nil)
