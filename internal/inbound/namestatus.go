package inbound

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidygit/tidygit/internal/models"
)

// parseNameStatus turns git diff --name-status output into a path -> status
// map. Malformed lines (log noise, partial writes) are skipped, never
// fatal: a batch of bad input degrades to an empty map with a warning.
//
// Rename and copy codes carry a score suffix (R100, C75); only the first
// letter matters. Rename lines list old and new paths; the new path is the
// one recorded.
func parseNameStatus(raw string, logger *logrus.Logger) map[string]models.ChangeStatus {
	result := make(map[string]models.ChangeStatus)

	skipped := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			skipped++
			continue
		}

		status, ok := statusFromCode(fields[0])
		if !ok {
			skipped++
			continue
		}

		path := fields[1]
		if status == models.StatusRenamed && len(fields) >= 3 {
			path = fields[2]
		}
		result[path] = status
	}

	if skipped > 0 {
		logger.WithField("lines", skipped).Warn("skipped malformed name-status lines")
	}
	return result
}

// statusFromCode maps a name-status code to a change status by its first
// letter. Unknown codes are not an error; the line is skipped.
func statusFromCode(code string) (models.ChangeStatus, bool) {
	if code == "" {
		return "", false
	}
	switch code[0] {
	case 'A':
		return models.StatusAdded, true
	case 'M':
		return models.StatusModified, true
	case 'D':
		return models.StatusDeleted, true
	case 'R', 'C':
		return models.StatusRenamed, true
	default:
		return "", false
	}
}
