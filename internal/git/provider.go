package git

import (
	"context"

	"github.com/tidygit/tidygit/internal/models"
)

// ResetMode selects how a reset moves HEAD relative to the index and tree.
type ResetMode string

const (
	// ResetSoft rewinds HEAD while keeping the index and working tree.
	ResetSoft ResetMode = "soft"
	// ResetMixed rewinds HEAD and the index, keeping the working tree.
	ResetMixed ResetMode = "mixed"
)

// ResetOptions describe one reset call.
type ResetOptions struct {
	Mode ResetMode
	Ref  string
}

// Provider is the version-control boundary the engine drives. Every method
// reports failure through its error return; implementations never panic on
// ordinary git failures.
type Provider interface {
	// Status returns a snapshot of the working tree.
	Status(ctx context.Context) (*models.GitStatus, error)

	// AllChanges enumerates every outstanding working-tree edit.
	AllChanges(ctx context.Context) ([]models.FileChange, error)

	// Stage adds the given paths to the index.
	Stage(ctx context.Context, paths []string) error

	// Commit records the staged index with the given message and returns
	// the new commit hash.
	Commit(ctx context.Context, message string) (string, error)

	// Reset moves HEAD to ref under the given mode.
	Reset(ctx context.Context, opts ResetOptions) error

	// Fetch updates remote-tracking refs for the named remote.
	Fetch(ctx context.Context, remote string) error

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context) (string, error)

	// RemoteURL returns the configured URL of the named remote.
	RemoteURL(ctx context.Context, remote string) (string, error)

	// Diff returns raw diff output for a revision range with extra options
	// (for example --name-status).
	Diff(ctx context.Context, revisionRange string, options ...string) (string, error)
}
