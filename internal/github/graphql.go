package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
)

type openPullRequestsQuery struct {
	Repository struct {
		PullRequests struct {
			Nodes []struct {
				Number              int
				HeadRefName         string
				State               githubv4.PullRequestState
				IsCrossRepository   bool
				HeadRepositoryOwner struct {
					Login string
				}
			}
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
		} `graphql:"pullRequests(first: 100, after: $cursor, states: OPEN, headRefName: $head)"`
	} `graphql:"repository(owner: $owner, name: $repo)"`
}

// listOpenPullRequestsGraphQL finds open, same-repository pull requests for
// branch using the GraphQL API
func (c *Client) listOpenPullRequestsGraphQL(ctx context.Context, branch string) ([]PRInfo, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(c.owner),
		"repo":   githubv4.String(c.repo),
		"head":   githubv4.String(branch),
		"cursor": (*githubv4.String)(nil),
	}

	var prs []PRInfo
	for {
		var query openPullRequestsQuery
		if err := c.graphql.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to query pull requests for %s: %w", branch, err)
		}

		for _, node := range query.Repository.PullRequests.Nodes {
			if node.IsCrossRepository {
				logger.WithField("pr", node.Number).Debug("Skipping cross-repository pull request")
				continue
			}
			prs = append(prs, PRInfo{
				Number:    node.Number,
				HeadRef:   node.HeadRefName,
				HeadOwner: node.HeadRepositoryOwner.Login,
				State:     strings.ToLower(string(node.State)),
			})
		}

		pageInfo := query.Repository.PullRequests.PageInfo
		if !pageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(pageInfo.EndCursor)
	}

	return prs, nil
}
