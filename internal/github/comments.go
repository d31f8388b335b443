package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v58/github"
)

// Comment is an issue comment on a pull request
type Comment struct {
	ID   int64
	Body string
}

// ListComments returns every issue comment on a pull request, oldest first
func (c *Client) ListComments(ctx context.Context, prNumber int) ([]Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: defaultPerPage},
	}

	var comments []Comment
	for {
		page, resp, err := c.rest.Issues.ListComments(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments on PR #%d: %w", prNumber, err)
		}
		logRate(resp, "list comments")

		for _, comment := range page {
			comments = append(comments, Comment{
				ID:   comment.GetID(),
				Body: comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreateComment posts a new comment on a pull request
func (c *Client) CreateComment(ctx context.Context, prNumber int, body string) (*Comment, error) {
	created, _, err := c.rest.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on PR #%d: %w", prNumber, err)
	}

	return &Comment{ID: created.GetID(), Body: created.GetBody()}, nil
}

// UpdateComment replaces the body of an existing comment
func (c *Client) UpdateComment(ctx context.Context, commentID int64, body string) (*Comment, error) {
	updated, _, err := c.rest.Issues.EditComment(ctx, c.owner, c.repo, commentID, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}

	return &Comment{ID: updated.GetID(), Body: updated.GetBody()}, nil
}
