package notifier

import (
	"context"
	"fmt"

	"github.com/fini-net/gh-check-reporter/internal/config"
	"github.com/fini-net/gh-check-reporter/internal/display"
	ghclient "github.com/fini-net/gh-check-reporter/internal/github"
	"github.com/fini-net/gh-check-reporter/internal/report"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "notifier")

// API is the subset of the GitHub API the notifier uses
type API interface {
	ListFailedCheckRuns(ctx context.Context, checkSuiteID int64) ([]ghclient.CheckRunInfo, error)
	ListOpenPullRequests(ctx context.Context, branch string) ([]ghclient.PRInfo, error)
	ListComments(ctx context.Context, prNumber int) ([]ghclient.Comment, error)
	CreateComment(ctx context.Context, prNumber int, body string) (*ghclient.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, body string) (*ghclient.Comment, error)
}

// Ensure the GitHub client implements API
var _ API = (*ghclient.Client)(nil)

// Action is what the notifier did for one pull request
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionSkipped       Action = "skipped"
	ActionPreviewCreate Action = "preview-create"
	ActionPreviewUpdate Action = "preview-update"
)

// Result records the outcome for one pull request
type Result struct {
	PRNumber  int
	CommentID int64
	Action    Action
	Body      string
}

// Notifier reports a check suite's failures on the pull requests of its
// head branch
type Notifier struct {
	api     API
	cfg     *config.Config
	printer *display.Printer
}

// New creates a Notifier. cfg is expected to be validated already.
func New(api API, cfg *config.Config, printer *display.Printer) *Notifier {
	return &Notifier{
		api:     api,
		cfg:     cfg,
		printer: printer,
	}
}

// Run performs a single reporting pass. It returns one Result per pull
// request it handled; an empty slice means there was nothing to do. The
// config must have a head branch; callers skip disabled runs before building
// a Notifier.
func (n *Notifier) Run(ctx context.Context) ([]Result, error) {
	failed, err := n.api.ListFailedCheckRuns(ctx, n.cfg.CheckSuiteID)
	if err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{
		"check_suite": n.cfg.CheckSuiteID,
		"failed":      len(failed),
	}).Debug("Fetched failed check runs")
	n.printer.PrintFailures(n.cfg.WorkflowName, failed)

	prs, err := n.api.ListOpenPullRequests(ctx, n.cfg.HeadBranch)
	if err != nil {
		return nil, err
	}
	if len(prs) == 0 {
		logger.WithField("branch", n.cfg.HeadBranch).Info("No open pull request for branch; nothing to report")
		return nil, nil
	}

	section := report.NewSection(n.cfg.WorkflowName, failed)
	signature := report.Signature(n.cfg.HeadSHA)

	results := make([]Result, 0, len(prs))
	for _, pr := range prs {
		result, err := n.notifyPullRequest(ctx, pr, section, signature, len(failed) == 0)
		if err != nil {
			return results, fmt.Errorf("PR #%d: %w", pr.Number, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (n *Notifier) notifyPullRequest(ctx context.Context, pr ghclient.PRInfo, section report.Section, signature string, passing bool) (Result, error) {
	entry := logger.WithFields(log.Fields{
		"pr":       pr.Number,
		"workflow": section.Workflow,
	})

	comments, err := n.api.ListComments(ctx, pr.Number)
	if err != nil {
		return Result{}, err
	}
	existing := FindManagedComment(comments)

	if existing == nil {
		if passing && n.cfg.QuietOnSuccess {
			entry.Info("No failures and no existing comment; skipping")
			return Result{PRNumber: pr.Number, Action: ActionSkipped}, nil
		}

		body := report.MergeSection(nil, section, signature)
		if n.cfg.DryRun {
			n.printer.PrintPreview(pr.Number, "create", body)
			return Result{PRNumber: pr.Number, Action: ActionPreviewCreate, Body: body}, nil
		}

		created, err := n.api.CreateComment(ctx, pr.Number, body)
		if err != nil {
			return Result{}, err
		}
		entry.WithField("comment", created.ID).Info("Created comment")
		return Result{PRNumber: pr.Number, CommentID: created.ID, Action: ActionCreated, Body: body}, nil
	}

	body := report.MergeSection(&existing.Body, section, signature)
	if n.cfg.DryRun {
		n.printer.PrintPreview(pr.Number, "update", body)
		return Result{PRNumber: pr.Number, CommentID: existing.ID, Action: ActionPreviewUpdate, Body: body}, nil
	}

	if _, err := n.api.UpdateComment(ctx, existing.ID, body); err != nil {
		return Result{}, err
	}
	entry.WithField("comment", existing.ID).Info("Updated comment")
	return Result{PRNumber: pr.Number, CommentID: existing.ID, Action: ActionUpdated, Body: body}, nil
}

// FindManagedComment returns the first comment carrying the signature
// marker, or nil
func FindManagedComment(comments []ghclient.Comment) *ghclient.Comment {
	for i := range comments {
		if report.IsManaged(comments[i].Body) {
			return &comments[i]
		}
	}
	return nil
}
