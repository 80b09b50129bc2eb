// Package orchestrator wires the scan, group, suggest, approve, and commit
// steps into one run, and keeps at most one run in flight per repository
// root.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidygit/tidygit/internal/commit"
	apperrors "github.com/tidygit/tidygit/internal/errors"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/grouping"
	"github.com/tidygit/tidygit/internal/history"
	"github.com/tidygit/tidygit/internal/message"
	"github.com/tidygit/tidygit/internal/models"
	"golang.org/x/sync/errgroup"
)

// inflight guards against concurrent orchestrations over one repository
// root within this process. Git operations against one index must not be
// interleaved, and rollback refs shift with every commit.
var inflight sync.Map

// ApproveFunc lets the caller filter or reorder the proposed groups before
// anything is committed. Returning an empty slice aborts the run cleanly.
type ApproveFunc func(groups []models.ChangeGroup) ([]models.ChangeGroup, error)

// Options control one orchestration run.
type Options struct {
	// DryRun stops after message synthesis; nothing is staged or committed.
	DryRun bool
	// Approve, when set, is consulted between suggestion and commit.
	Approve ApproveFunc
}

// Result is the outcome of one run.
type Result struct {
	Branch  string
	Status  *models.GitStatus
	Groups  []models.ChangeGroup
	Records []models.CommitRecord
}

// Orchestrator owns the engine components for one repository root.
type Orchestrator struct {
	root      string
	provider  git.Provider
	grouper   *grouping.Grouper
	suggester *message.Suggester
	committer *commit.BatchCommitter
	store     *history.Store
	logger    *logrus.Logger
}

// New creates an Orchestrator. The history store is optional; a nil store
// disables the audit log.
func New(root string, provider git.Provider, store *history.Store, logger *logrus.Logger) *Orchestrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Orchestrator{
		root:      root,
		provider:  provider,
		grouper:   grouping.NewGrouper(logger),
		suggester: message.NewSuggester(),
		committer: commit.NewBatchCommitter(provider, logger),
		store:     store,
		logger:    logger,
	}
}

// Run scans the working tree, clusters the changes, attaches suggested
// messages, consults the approval hook, and commits the surviving groups
// as one batch.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	if _, busy := inflight.LoadOrStore(o.root, struct{}{}); busy {
		return nil, apperrors.Validationf("another run is already in flight for %s", o.root)
	}
	defer inflight.Delete(o.root)

	// Both scans are read-only, so they can overlap safely.
	var status *models.GitStatus
	var changes []models.FileChange
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		status, err = o.provider.Status(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		changes, err = o.provider.AllChanges(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeGitOperation, "working-tree scan failed")
	}

	result := &Result{Branch: status.Branch, Status: status}
	if len(changes) == 0 {
		o.logger.Info("working tree is clean; nothing to commit")
		return result, nil
	}

	groups := o.grouper.Group(changes)
	for i := range groups {
		msg := o.suggester.Suggest(groups[i])
		groups[i].SuggestedMessage = &msg
	}
	result.Groups = groups

	if opts.DryRun {
		return result, nil
	}

	if opts.Approve != nil {
		approved, err := opts.Approve(groups)
		if err != nil {
			return nil, err
		}
		groups = approved
	}
	if len(groups) == 0 {
		o.logger.Info("no groups approved; nothing committed")
		result.Groups = nil
		return result, nil
	}

	records, err := o.committer.ExecuteBatch(ctx, groups)
	if err != nil {
		return nil, err
	}
	result.Groups = groups
	result.Records = records

	o.recordHistory(status.Branch, records)
	return result, nil
}

// recordHistory persists the batch to the audit log. Best effort: a
// history failure never fails a batch that already committed.
func (o *Orchestrator) recordHistory(branch string, records []models.CommitRecord) {
	if o.store == nil || len(records) == 0 {
		return
	}
	batch := models.BatchRecord{
		ID:        uuid.NewString(),
		Branch:    branch,
		Commits:   records,
		Timestamp: time.Now(),
	}
	if err := o.store.RecordBatch(batch); err != nil {
		o.logger.WithError(err).Warn("failed to record batch history")
	}
}
