package message

import (
	"testing"

	"github.com/tidygit/tidygit/internal/models"
)

func change(path string, status models.ChangeStatus) models.FileChange {
	return models.NewFileChange(path, status, 0, 0)
}

func group(files ...models.FileChange) models.ChangeGroup {
	return models.ChangeGroup{ID: "test", Files: files, Similarity: 1.0}
}

func TestSuggestTypePrecedence(t *testing.T) {
	tests := []struct {
		name string
		grp  models.ChangeGroup
		want models.MessageType
	}{
		{
			name: "all added is feat",
			grp: group(
				change("src/domains/auth/a.ts", models.StatusAdded),
				change("src/domains/auth/b.ts", models.StatusAdded),
			),
			want: models.TypeFeat,
		},
		{
			name: "all modified is fix",
			grp:  group(change("src/domains/auth/a.ts", models.StatusModified)),
			want: models.TypeFix,
		},
		{
			// The added check fires before the docs check: a brand-new
			// markdown file is feat, not docs.
			name: "added markdown is feat not docs",
			grp:  group(change("docs/guide.md", models.StatusAdded)),
			want: models.TypeFeat,
		},
		{
			// Same shadowing for modified docs: fix wins over docs.
			name: "modified markdown pair is fix not docs",
			grp: group(
				change("docs/a.md", models.StatusModified),
				change("docs/b.md", models.StatusModified),
			),
			want: models.TypeFix,
		},
		{
			name: "mixed-status docs is docs",
			grp: group(
				change("docs/a.md", models.StatusAdded),
				change("docs/b.txt", models.StatusDeleted),
			),
			want: models.TypeDocs,
		},
		{
			name: "mixed statuses fall through to chore",
			grp: group(
				change("src/domains/auth/a.ts", models.StatusAdded),
				change("src/domains/auth/b.ts", models.StatusDeleted),
			),
			want: models.TypeChore,
		},
		{
			name: "all deleted is chore",
			grp: group(
				change("src/domains/auth/a.ts", models.StatusDeleted),
				change("src/domains/auth/b.ts", models.StatusDeleted),
			),
			want: models.TypeChore,
		},
	}

	suggester := NewSuggester()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := suggester.Suggest(test.grp)
			if got.Type != test.want {
				t.Errorf("expected type %s, got %s", test.want, got.Type)
			}
		})
	}
}

func TestSuggestScope(t *testing.T) {
	suggester := NewSuggester()

	// Majority domain wins.
	msg := suggester.Suggest(group(
		change("src/domains/auth/a.ts", models.StatusModified),
		change("src/domains/auth/b.ts", models.StatusModified),
		change("src/domains/billing/c.ts", models.StatusModified),
	))
	if msg.Scope != "auth" {
		t.Errorf("expected scope auth, got %q", msg.Scope)
	}

	// Ties break toward the first-seen domain.
	msg = suggester.Suggest(group(
		change("src/domains/billing/a.ts", models.StatusModified),
		change("src/domains/auth/b.ts", models.StatusModified),
	))
	if msg.Scope != "billing" {
		t.Errorf("expected tie to break toward billing, got %q", msg.Scope)
	}
}

func TestSuggestDescription(t *testing.T) {
	suggester := NewSuggester()

	tests := []struct {
		name string
		grp  models.ChangeGroup
		want string
	}{
		{
			name: "single file uses verb and basename",
			grp:  group(change("src/domains/auth/login.ts", models.StatusAdded)),
			want: "add login.ts",
		},
		{
			name: "single deleted file",
			grp:  group(change("src/domains/auth/legacy.ts", models.StatusDeleted)),
			want: "remove legacy.ts",
		},
		{
			name: "uniform status names the scope",
			grp: group(
				change("src/domains/auth/a.ts", models.StatusModified),
				change("src/domains/auth/b.ts", models.StatusModified),
			),
			want: "update 2 auth files",
		},
		{
			name: "mixed statuses fall back to update",
			grp: group(
				change("src/domains/auth/a.ts", models.StatusAdded),
				change("src/domains/auth/b.ts", models.StatusDeleted),
				change("src/domains/auth/c.ts", models.StatusModified),
			),
			want: "update 3 files",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := suggester.Suggest(test.grp)
			if got.Description != test.want {
				t.Errorf("expected %q, got %q", test.want, got.Description)
			}
		})
	}
}

func TestSuggestFullFormat(t *testing.T) {
	suggester := NewSuggester()

	withScope := suggester.Suggest(group(change("src/domains/auth/login.ts", models.StatusAdded)))
	if withScope.Full != "feat(auth): add login.ts" {
		t.Errorf("unexpected full message: %q", withScope.Full)
	}

	// Parens are omitted when the group has no domain to use as scope.
	noScope := suggester.Suggest(models.ChangeGroup{
		ID:    "test",
		Files: []models.FileChange{{Path: "x.ts", Status: models.StatusModified, Domain: "", FileType: ".ts"}},
	})
	if noScope.Full != "fix: update x.ts" {
		t.Errorf("expected parens omitted for empty scope, got %q", noScope.Full)
	}
}
