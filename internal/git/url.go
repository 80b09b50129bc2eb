package git

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	httpsRemote = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/\s]+)`)
	sshRemote   = regexp.MustCompile(`[\w.-]+@[^:]+:([^/]+)/([^/\s]+)`)
	gitRemote   = regexp.MustCompile(`git://[^/]+/([^/]+)/([^/\s]+)`)
)

// ParseRemoteURL extracts owner and repo from a git remote URL. It accepts
// HTTPS (https://host/owner/repo.git), SSH (git@host:owner/repo.git), and
// git-protocol forms.
func ParseRemoteURL(remoteURL string) (owner, repo string, err error) {
	remoteURL = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git"))

	for _, re := range []*regexp.Regexp{httpsRemote, sshRemote, gitRemote} {
		if matches := re.FindStringSubmatch(remoteURL); len(matches) == 3 {
			return matches[1], matches[2], nil
		}
	}
	return "", "", fmt.Errorf("unrecognized git remote URL: %s", remoteURL)
}
