// Package inbound compares remote and local history without mutating
// either, classifying overlaps by severity before a pull or merge is
// attempted.
package inbound

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	apperrors "github.com/tidygit/tidygit/internal/errors"
	"github.com/tidygit/tidygit/internal/git"
	"github.com/tidygit/tidygit/internal/models"
)

// maxNamedConflicts caps how many high-severity paths get their own
// recommendation line.
const maxNamedConflicts = 3

// Analyzer runs the read-only inbound analysis pipeline. Each Analyze call
// is independent; no state survives between runs, and nothing but the
// initial fetch touches the repository.
type Analyzer struct {
	provider git.Provider
	remote   string
	logger   *logrus.Logger
}

// NewAnalyzer creates an Analyzer against the named remote (origin when
// empty).
func NewAnalyzer(provider git.Provider, remote string, logger *logrus.Logger) *Analyzer {
	if remote == "" {
		remote = "origin"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{provider: provider, remote: remote, logger: logger}
}

// Analyze fetches the remote, diffs HEAD against the remote branch, and
// classifies every path changed on both sides. Provider failures propagate
// verbatim under the phase code; this component's own validation failures
// get a stable code of their own.
func (a *Analyzer) Analyze(ctx context.Context) (report *models.InboundReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = apperrors.Newf(apperrors.CodeInboundAnalysis, "unexpected failure during inbound analysis: %v", r)
		}
	}()

	if fetchErr := a.provider.Fetch(ctx, a.remote); fetchErr != nil {
		return nil, apperrors.Wrap(fetchErr, apperrors.CodeInboundAnalysis, "fetch failed")
	}

	branch, branchErr := a.provider.CurrentBranch(ctx)
	if branchErr != nil {
		return nil, apperrors.Wrap(branchErr, apperrors.CodeInboundAnalysis, "could not resolve current branch")
	}
	branch = strings.TrimSpace(branch)
	if branch == "" || branch == "HEAD" {
		return nil, apperrors.InboundAnalysis("no branch checked out; cannot compare against remote")
	}

	remoteRef := a.remote + "/" + branch
	raw, diffErr := a.provider.Diff(ctx, "HEAD.."+remoteRef, "--name-status")
	if diffErr != nil {
		return nil, apperrors.Wrap(diffErr, apperrors.CodeInboundAnalysis, "diff against "+remoteRef+" failed")
	}

	if strings.TrimSpace(raw) == "" {
		return a.upToDateReport(ctx, branch), nil
	}

	localChanges, localErr := a.provider.AllChanges(ctx)
	if localErr != nil {
		return nil, apperrors.Wrap(localErr, apperrors.CodeInboundAnalysis, "could not enumerate local changes")
	}
	local := make(map[string]models.ChangeStatus, len(localChanges))
	for _, c := range localChanges {
		local[c.Path] = c.Status
	}

	inboundMap := parseNameStatus(raw, a.logger)

	conflicts := a.classify(inboundMap, local, remoteRef)
	summary := a.summarize(inboundMap, conflicts, remoteRef)

	return &models.InboundReport{
		Remote:       a.remote,
		Branch:       branch,
		TotalInbound: len(inboundMap),
		TotalLocal:   len(local),
		Conflicts:    conflicts,
		Summary:      summary,
		DiffLink:     a.diffLink(ctx, branch),
	}, nil
}

// classify walks every inbound path also edited locally and records the
// risky status pairings. Severity depends only on the pair, never on file
// content or magnitude.
func (a *Analyzer) classify(inbound, local map[string]models.ChangeStatus, remoteRef string) []models.ConflictEntry {
	paths := make([]string, 0, len(inbound))
	for path := range inbound {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var conflicts []models.ConflictEntry
	for _, path := range paths {
		localStatus, touched := local[path]
		if !touched {
			continue
		}
		remoteStatus := inbound[path]

		entry := models.ConflictEntry{
			Path:         path,
			LocalStatus:  localStatus,
			RemoteStatus: remoteStatus,
		}

		switch {
		case localStatus == models.StatusModified && remoteStatus == models.StatusModified:
			entry.Severity = models.SeverityHigh
			entry.LocalChanges = estimateMagnitude(path, "HEAD")
			entry.RemoteChanges = estimateMagnitude(path, remoteRef)
		case localStatus == models.StatusModified && remoteStatus == models.StatusDeleted:
			entry.Severity = models.SeverityHigh
			entry.LocalChanges = estimateMagnitude(path, "HEAD")
		case localStatus == models.StatusDeleted && remoteStatus == models.StatusModified:
			entry.Severity = models.SeverityHigh
			entry.RemoteChanges = estimateMagnitude(path, remoteRef)
		case localStatus == models.StatusAdded && remoteStatus == models.StatusAdded:
			entry.Severity = models.SeverityMedium
			entry.LocalChanges = estimateMagnitude(path, "HEAD")
			entry.RemoteChanges = estimateMagnitude(path, remoteRef)
		default:
			continue
		}

		conflicts = append(conflicts, entry)
	}
	return conflicts
}

// summarize builds the per-severity counts, the inbound file-type
// histogram, and the ordered recommendation list.
func (a *Analyzer) summarize(inbound map[string]models.ChangeStatus, conflicts []models.ConflictEntry, remoteRef string) models.ReportSummary {
	summary := models.ReportSummary{
		FileTypes: make(map[string]int),
	}

	for path := range inbound {
		ext := models.FileTypeForPath(path)
		if ext == "" {
			ext = "other"
		}
		summary.FileTypes[ext]++
	}

	var high []models.ConflictEntry
	for _, c := range conflicts {
		switch c.Severity {
		case models.SeverityHigh:
			summary.HighCount++
			high = append(high, c)
		case models.SeverityMedium:
			summary.MediumCount++
		case models.SeverityLow:
			summary.LowCount++
		}
	}

	summary.Description = fmt.Sprintf("%d inbound files from %s, %d of them conflicting with local changes",
		len(inbound), remoteRef, len(conflicts))

	for i, c := range high {
		if i == maxNamedConflicts {
			summary.Recommendations = append(summary.Recommendations,
				fmt.Sprintf("...and %d more high-severity conflicts", len(high)-maxNamedConflicts))
			break
		}
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("resolve %s before pulling: you %s it locally while the remote %s it",
				c.Path, models.ActionVerb(c.LocalStatus), pastTense(c.RemoteStatus)))
	}

	if summary.MediumCount > 0 {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("%d files were added on both sides; expect add/add merge conflicts", summary.MediumCount))
	}

	if len(conflicts) == 0 {
		summary.Recommendations = append(summary.Recommendations,
			"no overlapping changes detected; safe to pull")
	}

	return summary
}

// upToDateReport is the short-circuit result when the inbound diff is
// empty: no local-change enumeration, no classification.
func (a *Analyzer) upToDateReport(ctx context.Context, branch string) *models.InboundReport {
	return &models.InboundReport{
		Remote: a.remote,
		Branch: branch,
		Summary: models.ReportSummary{
			Description:     "branch is up to date with " + a.remote + "/" + branch,
			FileTypes:       map[string]int{},
			Recommendations: []string{"no remote changes detected"},
		},
		DiffLink: a.diffLink(ctx, branch),
	}
}

// diffLink resolves the remote URL into a compare link; any failure along
// the way degrades to the literal command hint.
func (a *Analyzer) diffLink(ctx context.Context, branch string) string {
	remoteURL, err := a.provider.RemoteURL(ctx, a.remote)
	if err != nil {
		a.logger.WithError(err).Debug("remote URL unavailable, using command hint")
		remoteURL = ""
	}
	return buildDiffLink(remoteURL, a.remote, branch)
}

// pastTense renders a remote status as a past-tense verb for prose.
func pastTense(status models.ChangeStatus) string {
	switch status {
	case models.StatusAdded:
		return "added"
	case models.StatusDeleted:
		return "deleted"
	case models.StatusRenamed:
		return "renamed"
	default:
		return "modified"
	}
}
