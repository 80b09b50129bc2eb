// Package message derives conventional-commit messages from change groups.
package message

import (
	"fmt"
	"path/filepath"

	"github.com/tidygit/tidygit/internal/models"
)

// docExtensions are the file types that mark a group as documentation.
var docExtensions = map[string]bool{
	".md":  true,
	".txt": true,
	".rst": true,
}

// Suggester synthesizes a SuggestedMessage from a group's composition.
// Pure computation; safe to call repeatedly as a group is reconsidered.
type Suggester struct{}

// NewSuggester creates a Suggester.
func NewSuggester() *Suggester {
	return &Suggester{}
}

// Suggest derives the message for one group.
func (s *Suggester) Suggest(group models.ChangeGroup) models.SuggestedMessage {
	msgType := classify(group.Files)
	scope := dominantDomain(group.Files)
	description := describe(group.Files, scope)

	full := fmt.Sprintf("%s: %s", msgType, description)
	if scope != "" {
		full = fmt.Sprintf("%s(%s): %s", msgType, scope, description)
	}

	return models.SuggestedMessage{
		Type:        msgType,
		Scope:       scope,
		Description: description,
		Full:        full,
	}
}

// classify picks the message type. The rules run in a fixed order and the
// first match wins: the all-added and all-modified checks fire before the
// docs and refactor checks, so a pure-add docs group is "feat" and a
// multi-file pure-modify group is "fix". That shadowing is intentional and
// load-bearing; reordering it changes messages users have come to expect.
func classify(files []models.FileChange) models.MessageType {
	allAdded, allModified, allDocs := true, true, true
	for _, f := range files {
		if f.Status != models.StatusAdded {
			allAdded = false
		}
		if f.Status != models.StatusModified {
			allModified = false
		}
		if !docExtensions[f.FileType] {
			allDocs = false
		}
	}

	switch {
	case allAdded:
		return models.TypeFeat
	case allModified:
		return models.TypeFix
	case allDocs:
		return models.TypeDocs
	case allModified && len(files) > 1:
		return models.TypeRefactor
	default:
		return models.TypeChore
	}
}

// dominantDomain returns the most frequent domain across the group, ties
// broken by first-seen order.
func dominantDomain(files []models.FileChange) string {
	counts := make(map[string]int)
	var order []string
	for _, f := range files {
		if _, seen := counts[f.Domain]; !seen {
			order = append(order, f.Domain)
		}
		counts[f.Domain]++
	}

	best := ""
	bestCount := 0
	for _, domain := range order {
		if counts[domain] > bestCount {
			best = domain
			bestCount = counts[domain]
		}
	}
	return best
}

// describe builds the free-text portion of the message.
func describe(files []models.FileChange, scope string) string {
	if len(files) == 1 {
		return fmt.Sprintf("%s %s", models.ActionVerb(files[0].Status), filepath.Base(files[0].Path))
	}

	uniform := true
	for _, f := range files[1:] {
		if f.Status != files[0].Status {
			uniform = false
			break
		}
	}
	if uniform {
		return fmt.Sprintf("%s %d %s files", models.ActionVerb(files[0].Status), len(files), scope)
	}
	return fmt.Sprintf("update %d files", len(files))
}
