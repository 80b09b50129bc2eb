package models

import (
	"time"
)

// ChangeStatus is the kind of edit a file has in the working tree or in a diff.
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "added"
	StatusModified ChangeStatus = "modified"
	StatusDeleted  ChangeStatus = "deleted"
	StatusRenamed  ChangeStatus = "renamed"
)

// FileChange represents one edited path. Created once per working-tree scan
// and never mutated afterwards.
type FileChange struct {
	Path      string       `json:"path"`
	Status    ChangeStatus `json:"status"`
	Domain    string       `json:"domain"`
	FileType  string       `json:"file_type"`
	Additions int          `json:"additions"`
	Deletions int          `json:"deletions"`
}

// ChangeGroup is a cluster of related changes treated as one logical commit.
// Files are disjoint across groups: every scanned change belongs to exactly
// one group after a grouping run.
type ChangeGroup struct {
	ID               string            `json:"id"`
	Files            []FileChange      `json:"files"`
	Similarity       float64           `json:"similarity"`
	SuggestedMessage *SuggestedMessage `json:"suggested_message,omitempty"`
}

// Paths returns the member file paths in group order.
func (g *ChangeGroup) Paths() []string {
	paths := make([]string, 0, len(g.Files))
	for _, f := range g.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// MessageType is a conventional-commit message category.
type MessageType string

const (
	TypeFeat     MessageType = "feat"
	TypeFix      MessageType = "fix"
	TypeChore    MessageType = "chore"
	TypeDocs     MessageType = "docs"
	TypeRefactor MessageType = "refactor"
)

// SuggestedMessage is a derived commit message for one group. Recomputed
// whenever a group's composition changes; never stored.
type SuggestedMessage struct {
	Type        MessageType `json:"type"`
	Scope       string      `json:"scope"`
	Description string      `json:"description"`
	Full        string      `json:"full"`
}

// CommitRecord is the audit entry for one successful commit in a batch.
type CommitRecord struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Files     []string  `json:"files"`
	Timestamp time.Time `json:"timestamp"`
}

// Severity classifies how risky a local/remote overlap is. Derived solely
// from the (local, remote) status pair, never from file content.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ConflictEntry is one path changed on both sides of a divergence.
type ConflictEntry struct {
	Path          string       `json:"path"`
	LocalStatus   ChangeStatus `json:"local_status"`
	RemoteStatus  ChangeStatus `json:"remote_status"`
	Severity      Severity     `json:"severity"`
	LocalChanges  int          `json:"local_changes"`
	RemoteChanges int          `json:"remote_changes"`
}

// ReportSummary is the human-facing digest of an inbound analysis.
type ReportSummary struct {
	Description     string         `json:"description"`
	HighCount       int            `json:"high_count"`
	MediumCount     int            `json:"medium_count"`
	LowCount        int            `json:"low_count"`
	FileTypes       map[string]int `json:"file_types"`
	Recommendations []string       `json:"recommendations"`
}

// InboundReport is the read-only result of one inbound analysis run.
type InboundReport struct {
	Remote       string          `json:"remote"`
	Branch       string          `json:"branch"`
	TotalInbound int             `json:"total_inbound"`
	TotalLocal   int             `json:"total_local"`
	Conflicts    []ConflictEntry `json:"conflicts"`
	Summary      ReportSummary   `json:"summary"`
	DiffLink     string          `json:"diff_link"`
}

// GitStatus is a snapshot of the working tree as reported by the provider.
type GitStatus struct {
	Branch    string   `json:"branch"`
	IsDirty   bool     `json:"is_dirty"`
	Staged    []string `json:"staged"`
	Unstaged  []string `json:"unstaged"`
	Untracked []string `json:"untracked"`
}

// BatchRecord is one persisted batch-commit run.
type BatchRecord struct {
	ID        string         `json:"id"`
	Branch    string         `json:"branch"`
	Commits   []CommitRecord `json:"commits"`
	Timestamp time.Time      `json:"timestamp"`
}
