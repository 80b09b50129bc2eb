package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tidygit/tidygit/internal/errors"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/models"
)

type fakeProvider struct {
	mu      sync.Mutex
	changes []models.FileChange
	commits int

	stageCalls  int
	commitCalls int
	block       chan struct{} // when set, Status blocks until closed
}

func (f *fakeProvider) Status(ctx context.Context) (*models.GitStatus, error) {
	if f.block != nil {
		<-f.block
	}
	return &models.GitStatus{Branch: "main", IsDirty: len(f.changes) > 0}, nil
}

func (f *fakeProvider) AllChanges(ctx context.Context) ([]models.FileChange, error) {
	return f.changes, nil
}

func (f *fakeProvider) Stage(ctx context.Context, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stageCalls++
	return nil
}

func (f *fakeProvider) Commit(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitCalls++
	f.commits++
	return fmt.Sprintf("hash%d", f.commits), nil
}

func (f *fakeProvider) Reset(ctx context.Context, opts git.ResetOptions) error { return nil }

func (f *fakeProvider) Fetch(ctx context.Context, remote string) error { return nil }

func (f *fakeProvider) CurrentBranch(ctx context.Context) (string, error) { return "main", nil }

func (f *fakeProvider) RemoteURL(ctx context.Context, remote string) (string, error) {
	return "", errors.New("no remote")
}

func (f *fakeProvider) Diff(ctx context.Context, rev string, opts ...string) (string, error) {
	return "", nil
}

func someChanges() []models.FileChange {
	return []models.FileChange{
		models.NewFileChange("src/domains/auth/a.ts", models.StatusModified, 1, 1),
		models.NewFileChange("src/domains/auth/b.ts", models.StatusModified, 2, 0),
		models.NewFileChange("docs/readme.md", models.StatusAdded, 5, 0),
	}
}

func TestRunDryRunProposesWithoutCommitting(t *testing.T) {
	provider := &fakeProvider{changes: someChanges()}
	orch := New(t.TempDir(), provider, nil, nil)

	result, err := orch.Run(context.Background(), Options{DryRun: true})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Groups)
	for _, g := range result.Groups {
		require.NotNil(t, g.SuggestedMessage)
		assert.NotEmpty(t, g.SuggestedMessage.Full)
	}
	assert.Empty(t, result.Records)
	assert.Zero(t, provider.stageCalls)
	assert.Zero(t, provider.commitCalls)
}

func TestRunCommitsApprovedGroups(t *testing.T) {
	provider := &fakeProvider{changes: someChanges()}
	orch := New(t.TempDir(), provider, nil, nil)

	result, err := orch.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "main", result.Branch)
	assert.NotEmpty(t, result.Records)
	assert.Equal(t, len(result.Groups), provider.commitCalls)
}

func TestRunApprovalFilterLimitsBatch(t *testing.T) {
	provider := &fakeProvider{changes: someChanges()}
	orch := New(t.TempDir(), provider, nil, nil)

	result, err := orch.Run(context.Background(), Options{
		Approve: func(groups []models.ChangeGroup) ([]models.ChangeGroup, error) {
			return groups[:1], nil
		},
	})
	require.NoError(t, err)

	assert.Len(t, result.Records, 1)
	assert.Equal(t, 1, provider.commitCalls)
}

func TestRunApprovalRejectionCommitsNothing(t *testing.T) {
	provider := &fakeProvider{changes: someChanges()}
	orch := New(t.TempDir(), provider, nil, nil)

	result, err := orch.Run(context.Background(), Options{
		Approve: func(groups []models.ChangeGroup) ([]models.ChangeGroup, error) {
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Zero(t, provider.commitCalls)
}

func TestRunCleanTreeIsNoOp(t *testing.T) {
	provider := &fakeProvider{}
	orch := New(t.TempDir(), provider, nil, nil)

	result, err := orch.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Groups)
	assert.Empty(t, result.Records)
}

func TestRunRejectsConcurrentRunsForSameRoot(t *testing.T) {
	root := t.TempDir()
	block := make(chan struct{})
	provider := &fakeProvider{changes: someChanges(), block: block}
	orch := New(root, provider, nil, nil)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := orch.Run(context.Background(), Options{DryRun: true})
		done <- err
	}()

	<-started
	time.Sleep(20 * time.Millisecond) // let the first run take the guard

	_, err := New(root, &fakeProvider{changes: someChanges()}, nil, nil).
		Run(context.Background(), Options{DryRun: true})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	close(block)
	require.NoError(t, <-done)
}
