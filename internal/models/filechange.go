package models

import (
	"path/filepath"
	"strings"
)

// NewFileChange builds a FileChange from a scanned path, deriving the
// grouping domain and file type from the path structure.
func NewFileChange(path string, status ChangeStatus, additions, deletions int) FileChange {
	return FileChange{
		Path:      path,
		Status:    status,
		Domain:    DomainForPath(path),
		FileType:  FileTypeForPath(path),
		Additions: additions,
		Deletions: deletions,
	}
}

// DomainForPath derives the coarse grouping key for a path:
// src/domains/<x>/... maps to <x>, src/infrastructure/... maps to
// "infrastructure", anything else maps to its first path segment
// ("root" when the path is empty).
func DomainForPath(path string) string {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "/")
	if normalized == "" {
		return "root"
	}

	segments := strings.Split(normalized, "/")
	if len(segments) >= 3 && segments[0] == "src" && segments[1] == "domains" {
		return segments[2]
	}
	if len(segments) >= 2 && segments[0] == "src" && segments[1] == "infrastructure" {
		return "infrastructure"
	}
	return segments[0]
}

// FileTypeForPath returns the lowercased extension including the leading
// dot, or an empty string when the path has none.
func FileTypeForPath(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ActionVerb maps a change status to the verb used in commit messages and
// recommendations.
func ActionVerb(status ChangeStatus) string {
	switch status {
	case StatusAdded:
		return "add"
	case StatusModified:
		return "update"
	case StatusDeleted:
		return "remove"
	case StatusRenamed:
		return "rename"
	default:
		return "modify"
	}
}
