package commit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tidygit/tidygit/internal/errors"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/models"
)

// fakeProvider scripts provider behavior and records every call.
type fakeProvider struct {
	stageCalls  [][]string
	commitCalls []string
	resetCalls  []git.ResetOptions

	stageErrOn  int // 1-based group index that fails staging, 0 = never
	commitErrOn int // 1-based commit index that fails, 0 = never
	resetErr    error

	commits int
}

func (f *fakeProvider) Status(ctx context.Context) (*models.GitStatus, error) {
	return &models.GitStatus{Branch: "main"}, nil
}

func (f *fakeProvider) AllChanges(ctx context.Context) ([]models.FileChange, error) {
	return nil, nil
}

func (f *fakeProvider) Stage(ctx context.Context, paths []string) error {
	f.stageCalls = append(f.stageCalls, paths)
	if f.stageErrOn > 0 && len(f.stageCalls) == f.stageErrOn {
		return errors.New("stage exploded")
	}
	return nil
}

func (f *fakeProvider) Commit(ctx context.Context, message string) (string, error) {
	f.commitCalls = append(f.commitCalls, message)
	if f.commitErrOn > 0 && len(f.commitCalls) == f.commitErrOn {
		return "", errors.New("commit exploded")
	}
	f.commits++
	return fmt.Sprintf("hash%d", f.commits), nil
}

func (f *fakeProvider) Reset(ctx context.Context, opts git.ResetOptions) error {
	f.resetCalls = append(f.resetCalls, opts)
	return f.resetErr
}

func (f *fakeProvider) Fetch(ctx context.Context, remote string) error { return nil }

func (f *fakeProvider) CurrentBranch(ctx context.Context) (string, error) { return "main", nil }

func (f *fakeProvider) RemoteURL(ctx context.Context, remote string) (string, error) {
	return "", nil
}

func (f *fakeProvider) Diff(ctx context.Context, rev string, opts ...string) (string, error) {
	return "", nil
}

func testGroup(id string, paths ...string) models.ChangeGroup {
	files := make([]models.FileChange, 0, len(paths))
	for _, p := range paths {
		files = append(files, models.NewFileChange(p, models.StatusModified, 1, 1))
	}
	return models.ChangeGroup{
		ID:         id,
		Files:      files,
		Similarity: 1.0,
		SuggestedMessage: &models.SuggestedMessage{
			Type: models.TypeFix,
			Full: "fix: update " + id,
		},
	}
}

func TestExecuteBatchSuccess(t *testing.T) {
	provider := &fakeProvider{}
	committer := NewBatchCommitter(provider, nil)

	records, err := committer.ExecuteBatch(context.Background(),
		[]models.ChangeGroup{
			testGroup("g1", "a.ts", "b.ts"),
			testGroup("g2", "c.ts"),
		})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "hash1", records[0].Hash)
	assert.Equal(t, "hash2", records[1].Hash)
	assert.Equal(t, []string{"a.ts", "b.ts"}, records[0].Files)
	assert.Equal(t, "fix: update g1", records[0].Message)
	assert.False(t, records[0].Timestamp.IsZero())
	assert.Empty(t, provider.resetCalls)
}

func TestExecuteBatchCommitFailureRollsBack(t *testing.T) {
	provider := &fakeProvider{commitErrOn: 2}
	committer := NewBatchCommitter(provider, nil)

	records, err := committer.ExecuteBatch(context.Background(),
		[]models.ChangeGroup{
			testGroup("g1", "a.ts"),
			testGroup("g2", "b.ts"),
			testGroup("g3", "c.ts"),
		})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCommitFailed))

	// The first group's record is never surfaced.
	assert.Nil(t, records)

	// Rollback targets the parent of the first commit of the batch, and
	// the third group is never attempted.
	require.Len(t, provider.resetCalls, 1)
	assert.Equal(t, git.ResetSoft, provider.resetCalls[0].Mode)
	assert.Equal(t, "hash1^", provider.resetCalls[0].Ref)
	assert.Len(t, provider.stageCalls, 2)
	assert.Len(t, provider.commitCalls, 2)
}

func TestExecuteBatchStageFailureBeforeAnyCommit(t *testing.T) {
	provider := &fakeProvider{stageErrOn: 1}
	committer := NewBatchCommitter(provider, nil)

	records, err := committer.ExecuteBatch(context.Background(),
		[]models.ChangeGroup{testGroup("g1", "a.ts")})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStageFailed))
	assert.Nil(t, records)

	// Nothing was committed, so there is nothing to reset.
	assert.Empty(t, provider.resetCalls)
	assert.Empty(t, provider.commitCalls)
}

func TestExecuteBatchRollbackFailureDoesNotMaskOriginal(t *testing.T) {
	provider := &fakeProvider{commitErrOn: 2, resetErr: errors.New("reset exploded")}
	committer := NewBatchCommitter(provider, nil)

	_, err := committer.ExecuteBatch(context.Background(),
		[]models.ChangeGroup{
			testGroup("g1", "a.ts"),
			testGroup("g2", "b.ts"),
		})

	require.Error(t, err)
	// The commit failure stays the returned error even though the
	// rollback also failed.
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCommitFailed))
}

func TestExecuteBatchEmptyInputRejected(t *testing.T) {
	provider := &fakeProvider{}
	committer := NewBatchCommitter(provider, nil)

	_, err := committer.ExecuteBatch(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Empty(t, provider.stageCalls)
}

func TestExecuteBatchMissingMessageRejected(t *testing.T) {
	provider := &fakeProvider{}
	committer := NewBatchCommitter(provider, nil)

	grp := testGroup("g1", "a.ts")
	grp.SuggestedMessage = nil

	_, err := committer.ExecuteBatch(context.Background(), []models.ChangeGroup{grp})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestExecuteBatchStateResetsBetweenRuns(t *testing.T) {
	provider := &fakeProvider{}
	committer := NewBatchCommitter(provider, nil)

	_, err := committer.ExecuteBatch(context.Background(),
		[]models.ChangeGroup{testGroup("g1", "a.ts")})
	require.NoError(t, err)

	// A failure in a fresh batch must roll back only to this batch's
	// first commit, not the previous run's.
	provider.commitErrOn = 3 // second batch's second commit overall is call 3
	_, err = committer.ExecuteBatch(context.Background(),
		[]models.ChangeGroup{
			testGroup("g2", "b.ts"),
			testGroup("g3", "c.ts"),
		})
	require.Error(t, err)

	require.Len(t, provider.resetCalls, 1)
	assert.Equal(t, "hash2^", provider.resetCalls[0].Ref)
}
