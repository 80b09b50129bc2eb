// Package grouping clusters working-tree changes into semantically related
// groups, each a candidate for one commit.
package grouping

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidygit/tidygit/internal/models"
)

// similarityThreshold is the minimum seed similarity for a change to join
// a group. Two changes sharing status and domain score well above it even
// with different extensions; three mismatched signals score well below.
const similarityThreshold = 0.4

// Grouper partitions a flat change list into groups via greedy single-pass
// clustering. Deterministic for a fixed input order; no I/O.
type Grouper struct {
	logger *logrus.Logger
}

// NewGrouper creates a Grouper.
func NewGrouper(logger *logrus.Logger) *Grouper {
	if logger == nil {
		logger = logrus.New()
	}
	return &Grouper{logger: logger}
}

// Group partitions changes into clusters. Every input change lands in
// exactly one group. O(n^2) in the change count, which is bounded by one
// working-tree scan.
func (g *Grouper) Group(changes []models.FileChange) []models.ChangeGroup {
	ungrouped := make([]models.FileChange, len(changes))
	copy(ungrouped, changes)

	var groups []models.ChangeGroup
	for len(ungrouped) > 0 {
		seed := ungrouped[0]
		ungrouped = ungrouped[1:]

		members := []models.FileChange{seed}
		var remaining []models.FileChange
		var scoreSum float64

		for _, candidate := range ungrouped {
			s := Score(seed, candidate)
			if s > similarityThreshold {
				members = append(members, candidate)
				scoreSum += s
			} else {
				remaining = append(remaining, candidate)
			}
		}
		ungrouped = remaining

		similarity := 1.0
		if len(members) > 1 {
			similarity = scoreSum / float64(len(members)-1)
		}

		groups = append(groups, models.ChangeGroup{
			ID:         uuid.NewString(),
			Files:      members,
			Similarity: similarity,
		})
	}

	g.logger.WithFields(logrus.Fields{
		"changes": len(changes),
		"groups":  len(groups),
	}).Debug("clustered working-tree changes")

	return groups
}

// Score rates how related two changes are, as the mean of three signals:
// status match (1.0 or 0.5), domain match (1.0 or 0.0), and file-type
// match (0.5 or 0.2). The nonzero type-mismatch floor lets changes cluster
// on status and domain alone.
func Score(a, b models.FileChange) float64 {
	statusScore := 0.5
	if a.Status == b.Status {
		statusScore = 1.0
	}

	domainScore := 0.0
	if a.Domain == b.Domain {
		domainScore = 1.0
	}

	typeScore := 0.2
	if a.FileType == b.FileType {
		typeScore = 0.5
	}

	return (statusScore + domainScore + typeScore) / 3.0
}
