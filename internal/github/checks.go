package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v58/github"
)

const (
	StatusCompleted   = "completed"
	ConclusionFailure = "failure"
)

// CheckRunInfo is the subset of a check run the reporter works with
type CheckRunInfo struct {
	Name        string
	// Title is the run's output title, empty when the run reported none.
	Title       string
	Status      string
	Conclusion  string
	HTMLURL     string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Failed reports whether the run completed with a failure conclusion.
func (c CheckRunInfo) Failed() bool {
	return c.Status == StatusCompleted && c.Conclusion == ConclusionFailure
}

// JobTitle is the label shown for a run: its output title, or its name when
// the run reported no title.
func (c CheckRunInfo) JobTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

func checkRunInfo(run *github.CheckRun) CheckRunInfo {
	info := CheckRunInfo{
		Name:       run.GetName(),
		Title:      run.GetOutput().GetTitle(),
		Status:     run.GetStatus(),
		Conclusion: run.GetConclusion(),
		HTMLURL:    run.GetHTMLURL(),
	}
	if run.StartedAt != nil {
		t := run.GetStartedAt().Time
		info.StartedAt = &t
	}
	if run.CompletedAt != nil {
		t := run.GetCompletedAt().Time
		info.CompletedAt = &t
	}
	return info
}

// ListFailedCheckRuns returns every failed check run in a check suite, in
// the order the API returns them. All pages are read.
func (c *Client) ListFailedCheckRuns(ctx context.Context, checkSuiteID int64) ([]CheckRunInfo, error) {
	opts := &github.ListCheckRunsOptions{
		Status:      github.String(StatusCompleted),
		ListOptions: github.ListOptions{PerPage: defaultPerPage},
	}

	var failed []CheckRunInfo
	for {
		result, resp, err := c.rest.Checks.ListCheckRunsCheckSuite(ctx, c.owner, c.repo, checkSuiteID, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list check runs for suite %d: %w", checkSuiteID, err)
		}
		logRate(resp, "list check runs")

		for _, run := range result.CheckRuns {
			info := checkRunInfo(run)
			if info.Failed() {
				failed = append(failed, info)
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return failed, nil
}
