package github

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/google/go-github/v58/github"
)

// PRInfo contains the pull request fields used to route a comment
type PRInfo struct {
	Number    int
	HeadRef   string
	HeadOwner string
	State     string
}

// ParseOwnerRepo extracts owner and repo from git remote origin
func ParseOwnerRepo() (string, string, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	output, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to get git remote: %w", err)
	}

	return parseOwnerRepoFromURL(strings.TrimSpace(string(output)))
}

var (
	sshRemotePattern   = regexp.MustCompile(`git@github\.com:([^/]+)/(.+?)(?:\.git)?/?$`)
	httpsRemotePattern = regexp.MustCompile(`https://github\.com/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// parseOwnerRepoFromURL extracts owner and repo from a remote URL string
func parseOwnerRepoFromURL(url string) (string, string, error) {
	// Parse SSH format: git@github.com:owner/repo.git
	if matches := sshRemotePattern.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], strings.TrimSuffix(matches[2], "/"), nil
	}

	// Parse HTTPS format: https://github.com/owner/repo or https://github.com/owner/repo.git
	if matches := httpsRemotePattern.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], strings.TrimSuffix(matches[2], "/"), nil
	}

	return "", "", fmt.Errorf("unable to parse owner/repo from remote URL: %s", url)
}

// ListOpenPullRequests returns the open pull requests whose head is branch
// in this repository's owner. Pull requests from forks are skipped.
func (c *Client) ListOpenPullRequests(ctx context.Context, branch string) ([]PRInfo, error) {
	if c.useGraphQL {
		return c.listOpenPullRequestsGraphQL(ctx, branch)
	}

	opts := &github.PullRequestListOptions{
		State:       "open",
		Head:        c.owner + ":" + branch,
		ListOptions: github.ListOptions{PerPage: defaultPerPage},
	}

	var prs []PRInfo
	for {
		page, resp, err := c.rest.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s: %w", branch, err)
		}
		logRate(resp, "list pull requests")

		for _, pr := range page {
			info := PRInfo{
				Number:    pr.GetNumber(),
				HeadRef:   pr.GetHead().GetRef(),
				HeadOwner: pr.GetHead().GetRepo().GetOwner().GetLogin(),
				State:     pr.GetState(),
			}
			if !c.isInternal(info) {
				logger.WithField("pr", info.Number).WithField("head_owner", info.HeadOwner).Debug("Skipping pull request from another owner")
				continue
			}
			prs = append(prs, info)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return prs, nil
}

func (c *Client) isInternal(pr PRInfo) bool {
	return strings.EqualFold(pr.HeadOwner, c.owner)
}
