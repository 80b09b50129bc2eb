package inbound

import (
	"fmt"
	"strings"

	"github.com/tidygit/tidygit/internal/git"
)

// buildDiffLink produces a human-followable pointer at the inbound diff: a
// host compare URL when the remote lives on a known forge, otherwise a
// literal git command the user can run. This never fails; any extraction
// problem falls back to the command hint.
func buildDiffLink(remoteURL, remote, branch string) string {
	fallback := fmt.Sprintf("run: git diff HEAD..%s/%s", remote, branch)

	owner, repo, err := git.ParseRemoteURL(remoteURL)
	if err != nil {
		return fallback
	}

	switch {
	case strings.Contains(remoteURL, "github.com"):
		return fmt.Sprintf("https://github.com/%s/%s/compare/%s", owner, repo, branch)
	case strings.Contains(remoteURL, "gitlab.com"):
		return fmt.Sprintf("https://gitlab.com/%s/%s/-/compare/%s", owner, repo, branch)
	case strings.Contains(remoteURL, "bitbucket.org"):
		return fmt.Sprintf("https://bitbucket.org/%s/%s/branches/compare/%s", owner, repo, branch)
	default:
		return fallback
	}
}
