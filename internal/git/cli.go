package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidygit/tidygit/internal/models"
)

// CLI is a Provider backed by the git binary. All commands run against one
// repository root; git serializes index access itself, and callers keep one
// orchestration in flight per root, so no locking happens here.
type CLI struct {
	root   string
	logger *logrus.Logger
}

// NewCLI creates a CLI provider for the repository rooted at root.
func NewCLI(root string, logger *logrus.Logger) *CLI {
	if logger == nil {
		logger = logrus.New()
	}
	return &CLI{root: root, logger: logger}
}

// DetectRoot returns the top-level directory of the repository containing
// dir, or an error when dir is not inside a work tree.
func DetectRoot(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// run executes one git command in the repository root and returns stdout.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.root

	c.logger.WithField("args", strings.Join(args, " ")).Debug("running git")

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(output), nil
}

// Status returns the current branch plus staged/unstaged/untracked paths.
func (c *CLI) Status(ctx context.Context) (*models.GitStatus, error) {
	branch, err := c.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	output, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	status := &models.GitStatus{Branch: branch}
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		code, path := line[:2], pathFromPorcelain(line[3:])
		if code == "??" {
			status.Untracked = append(status.Untracked, path)
			continue
		}
		if code[0] != ' ' {
			status.Staged = append(status.Staged, path)
		}
		if code[1] != ' ' {
			status.Unstaged = append(status.Unstaged, path)
		}
	}
	status.IsDirty = len(status.Staged)+len(status.Unstaged)+len(status.Untracked) > 0
	return status, nil
}

// AllChanges scans the working tree and returns one FileChange per edited
// path, with addition/deletion counts merged in from git diff --numstat.
func (c *CLI) AllChanges(ctx context.Context) ([]models.FileChange, error) {
	output, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	stats, err := c.numstat(ctx)
	if err != nil {
		// Counts are advisory; a failed numstat degrades to zeroes.
		c.logger.WithError(err).Warn("numstat unavailable, change sizes default to 0")
		stats = map[string][2]int{}
	}

	var changes []models.FileChange
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		status, ok := statusFromPorcelain(line[:2])
		if !ok {
			continue
		}
		path := pathFromPorcelain(line[3:])
		counts := stats[path]
		changes = append(changes, models.NewFileChange(path, status, counts[0], counts[1]))
	}
	return changes, nil
}

// numstat returns per-path (additions, deletions) for the working tree.
func (c *CLI) numstat(ctx context.Context) (map[string][2]int, error) {
	output, err := c.run(ctx, "diff", "--numstat", "HEAD")
	if err != nil {
		return nil, err
	}
	return parseNumstat(output), nil
}

// Stage adds paths to the index.
func (c *CLI) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := c.run(ctx, args...)
	return err
}

// Commit records the staged index and returns the new commit hash.
func (c *CLI) Commit(ctx context.Context, message string) (string, error) {
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return "", err
	}
	hash, err := c.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// Reset moves HEAD to the given ref.
func (c *CLI) Reset(ctx context.Context, opts ResetOptions) error {
	mode := opts.Mode
	if mode == "" {
		mode = ResetMixed
	}
	_, err := c.run(ctx, "reset", "--"+string(mode), opts.Ref)
	return err
}

// Fetch updates remote-tracking refs. An empty remote defaults to origin.
func (c *CLI) Fetch(ctx context.Context, remote string) error {
	if remote == "" {
		remote = "origin"
	}
	_, err := c.run(ctx, "fetch", remote)
	return err
}

// CurrentBranch returns the checked-out branch name.
func (c *CLI) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// RemoteURL returns the configured URL for a remote (origin by default).
func (c *CLI) RemoteURL(ctx context.Context, remote string) (string, error) {
	if remote == "" {
		remote = "origin"
	}
	output, err := c.run(ctx, "config", "--get", "remote."+remote+".url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Diff returns raw diff output for a revision range.
func (c *CLI) Diff(ctx context.Context, revisionRange string, options ...string) (string, error) {
	args := append([]string{"diff"}, options...)
	args = append(args, revisionRange)
	return c.run(ctx, args...)
}

// statusFromPorcelain maps a two-letter porcelain code to a change status.
// Untracked files count as additions for grouping purposes.
func statusFromPorcelain(code string) (models.ChangeStatus, bool) {
	if code == "??" {
		return models.StatusAdded, true
	}

	// Prefer the staged column, fall back to the unstaged one.
	for _, ch := range []byte{code[0], code[1]} {
		switch ch {
		case 'A':
			return models.StatusAdded, true
		case 'M':
			return models.StatusModified, true
		case 'D':
			return models.StatusDeleted, true
		case 'R', 'C':
			return models.StatusRenamed, true
		}
	}
	return "", false
}

// pathFromPorcelain strips the rename arrow, keeping the new path.
func pathFromPorcelain(field string) string {
	if idx := strings.Index(field, " -> "); idx >= 0 {
		field = field[idx+4:]
	}
	return strings.TrimSpace(field)
}

// parseNumstat turns git diff --numstat output into path -> (adds, dels).
// Binary files report "-" and count as zero. Rename lines ("old => new")
// are keyed by the new path.
func parseNumstat(output string) map[string][2]int {
	stats := make(map[string][2]int)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		var adds, dels int
		fmt.Sscanf(fields[0], "%d", &adds)
		fmt.Sscanf(fields[1], "%d", &dels)

		path := strings.Join(fields[2:], " ")
		if idx := strings.Index(path, " => "); idx >= 0 && !strings.Contains(path, "{") {
			path = path[idx+4:]
		}
		stats[path] = [2]int{adds, dels}
	}
	return stats
}
