// Package commit drives the provider to commit approved change groups in
// order, with compensating rollback when any group fails.
package commit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	apperrors "github.com/tidygit/tidygit/internal/errors"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/models"
)

// BatchCommitter commits groups strictly in input order. One instance
// serves one batch at a time: the committed-hash list is reset at the
// start of every ExecuteBatch call, so concurrent batches on the same
// instance are a caller bug. Callers serialize or instantiate fresh.
type BatchCommitter struct {
	provider        git.Provider
	logger          *logrus.Logger
	committedHashes []string
}

// NewBatchCommitter creates a BatchCommitter over the given provider.
func NewBatchCommitter(provider git.Provider, logger *logrus.Logger) *BatchCommitter {
	if logger == nil {
		logger = logrus.New()
	}
	return &BatchCommitter{provider: provider, logger: logger}
}

// ExecuteBatch stages and commits each group in order. On any failure it
// rolls the batch back (soft reset to the parent of its first commit) and
// returns the phase error; the records of already-committed groups are
// never handed to the caller on failure. A successful run returns one
// CommitRecord per group.
func (b *BatchCommitter) ExecuteBatch(ctx context.Context, groups []models.ChangeGroup) (records []models.CommitRecord, err error) {
	if len(groups) == 0 {
		return nil, apperrors.Validation("no change groups to commit")
	}

	b.committedHashes = b.committedHashes[:0]

	defer func() {
		if r := recover(); r != nil {
			b.rollback(ctx)
			records = nil
			err = apperrors.Newf(apperrors.CodeBatchCommit, "unexpected failure during batch commit: %v", r)
		}
	}()

	for _, group := range groups {
		msg := group.SuggestedMessage
		if msg == nil || msg.Full == "" {
			b.rollback(ctx)
			return nil, apperrors.Validationf("group %s has no suggested message", group.ID)
		}

		paths := group.Paths()
		if stageErr := b.provider.Stage(ctx, paths); stageErr != nil {
			b.rollback(ctx)
			return nil, apperrors.StageFailed(stageErr, "failed to stage group "+group.ID).
				WithContext("paths", paths)
		}

		hash, commitErr := b.provider.Commit(ctx, msg.Full)
		if commitErr != nil {
			b.rollback(ctx)
			return nil, apperrors.CommitFailed(commitErr, "failed to commit group "+group.ID).
				WithContext("message", msg.Full)
		}

		b.committedHashes = append(b.committedHashes, hash)
		records = append(records, models.CommitRecord{
			Hash:      hash,
			Message:   msg.Full,
			Files:     paths,
			Timestamp: time.Now(),
		})

		b.logger.WithFields(logrus.Fields{
			"hash":  hash,
			"files": len(paths),
		}).Info("committed group")
	}

	return records, nil
}

// rollback undoes every commit made so far in this batch by soft-resetting
// to the parent of the first one, leaving the working tree and index
// untouched. A no-op when nothing was committed. Rollback failure is
// logged but never replaces the error that triggered it.
func (b *BatchCommitter) rollback(ctx context.Context) {
	if len(b.committedHashes) == 0 {
		return
	}

	ref := b.committedHashes[0] + "^"
	b.logger.WithFields(logrus.Fields{
		"commits": len(b.committedHashes),
		"ref":     ref,
	}).Warn("rolling back batch")

	if err := b.provider.Reset(ctx, git.ResetOptions{Mode: git.ResetSoft, Ref: ref}); err != nil {
		b.logger.WithError(err).Error("rollback failed; repository keeps the partial batch")
	}
	b.committedHashes = b.committedHashes[:0]
}
