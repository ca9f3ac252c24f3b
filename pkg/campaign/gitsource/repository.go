package gitsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"vanet-hq/saturn/pkg/config"
)

// Repository keeps a local checkout of a scenario template repository in
// sync with its remote. The checkout is a read-only cache: Sync moves it
// to the tracked branch head or the pinned revision, and nothing else
// writes to it.
type Repository struct {
	config    *config.GitConfig
	localPath string
	auth      AuthProvider
	repo      *gogit.Repository
	logger    *slog.Logger
	mu        sync.Mutex
}

// NewRepository creates a template repository manager. The config must
// name a repository URL and a branch; credentials are inferred from the
// auth section. A nil logger uses slog.Default.
func NewRepository(cfg *config.GitConfig, logger *slog.Logger) (*Repository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Repository == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		return nil, fmt.Errorf("branch cannot be empty")
	}

	auth, err := NewAuthProvider(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth provider: %w", err)
	}

	localPath := cfg.Directory
	if localPath == "" {
		localPath = filepath.Join(os.TempDir(), "saturn-templates")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Repository{
		config:    cfg,
		localPath: localPath,
		auth:      auth,
		logger: logger.With(
			"component", "campaign.gitsource",
			"auth", auth.Type(),
		),
	}, nil
}

// Sync brings the local checkout up to date: clone on first use, then
// fetch and check out the tracked branch head or the pinned revision.
// The checkout ends up detached at the target commit.
func (r *Repository) Sync(ctx context.Context) (*SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timeout := r.config.Timeout
	if timeout <= 0 {
		timeout = config.DefaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cloned, err := r.ensureOpen(ctx)
	if err != nil {
		return nil, err
	}

	fromSHA := ""
	if !cloned {
		if ref, err := r.repo.Head(); err == nil {
			fromSHA = ref.Hash().String()
		}
		if err := r.fetch(ctx); err != nil {
			return nil, err
		}
	}

	target, err := r.checkoutTarget()
	if err != nil {
		return nil, err
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := worktree.Checkout(&gogit.CheckoutOptions{Hash: target, Force: true}); err != nil {
		return nil, fmt.Errorf("failed to check out %s: %w", shortSHA(target.String()), err)
	}

	result := &SyncResult{
		FromSHA: fromSHA,
		ToSHA:   target.String(),
		Updated: fromSHA != target.String(),
	}

	if result.Updated {
		r.logger.Info("templates updated",
			"from", shortSHA(fromSHA),
			"to", shortSHA(result.ToSHA),
			"path", r.localPath,
		)
	} else {
		r.logger.Debug("templates already up to date",
			"sha", shortSHA(result.ToSHA),
		)
	}

	return result, nil
}

// ensureOpen opens the existing checkout or clones a fresh one. It
// reports whether a clone happened.
func (r *Repository) ensureOpen(ctx context.Context) (bool, error) {
	if r.repo != nil {
		return false, nil
	}

	gitDir := filepath.Join(r.localPath, ".git")
	if _, err := os.Stat(gitDir); err == nil {
		repo, err := gogit.PlainOpen(r.localPath)
		if err != nil {
			return false, fmt.Errorf("failed to open existing checkout: %w", err)
		}
		r.repo = repo
		return false, nil
	}

	if err := os.MkdirAll(r.localPath, 0o755); err != nil {
		return false, fmt.Errorf("failed to create checkout directory: %w", err)
	}

	auth, err := r.auth.GetAuth()
	if err != nil {
		return false, fmt.Errorf("failed to get auth: %w", err)
	}

	opts := &gogit.CloneOptions{
		URL:           r.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(r.config.Branch),
		// A pinned revision may live outside the tracked branch.
		SingleBranch: r.config.Revision == "",
		Auth:         auth,
	}

	repo, err := gogit.PlainCloneContext(ctx, r.localPath, false, opts)
	if err != nil {
		return false, fmt.Errorf("failed to clone %s: %w", r.config.Repository, err)
	}

	r.logger.Info("cloned template repository",
		"repository", r.config.Repository,
		"branch", r.config.Branch,
		"path", r.localPath,
	)

	r.repo = repo
	return true, nil
}

// fetch updates the remote-tracking refs from origin.
func (r *Repository) fetch(ctx context.Context) error {
	auth, err := r.auth.GetAuth()
	if err != nil {
		return fmt.Errorf("failed to get auth: %w", err)
	}

	err = r.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: "origin",
		Auth:       auth,
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	return nil
}

// checkoutTarget resolves what Sync should check out: the pinned
// revision when one is configured, the remote branch head otherwise.
func (r *Repository) checkoutTarget() (plumbing.Hash, error) {
	if rev := r.config.Revision; rev != "" {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
		}
		return *hash, nil
	}

	refName := plumbing.NewRemoteReferenceName("origin", r.config.Branch)
	ref, err := r.repo.Reference(refName, true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve branch %q: %w", r.config.Branch, err)
	}
	return ref.Hash(), nil
}

// Head returns metadata about the currently checked-out commit.
func (r *Repository) Head() (*CommitInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo == nil {
		return nil, fmt.Errorf("repository not synced, call Sync first")
	}

	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}

	return &CommitInfo{
		SHA:        commit.Hash.String(),
		Author:     commit.Author.Name,
		Email:      commit.Author.Email,
		Timestamp:  commit.Author.When,
		Message:    commit.Message,
		Branch:     r.config.Branch,
		Repository: r.config.Repository,
	}, nil
}

// Path returns the local checkout path.
func (r *Repository) Path() string {
	return r.localPath
}

// ListTemplateFiles returns the scenario template files in the checkout:
// manifests, scenario files, and resource documents. Hidden files and
// the .git directory are skipped.
func (r *Repository) ListTemplateFiles() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo == nil {
		return nil, fmt.Errorf("repository not synced, call Sync first")
	}

	var files []string
	err := filepath.Walk(r.localPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		switch filepath.Ext(path) {
		case ".ini", ".csv", ".xml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk checkout: %w", err)
	}

	return files, nil
}

// shortSHA abbreviates a commit hash for log output.
func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
