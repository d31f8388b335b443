package github

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"

	"github.com/google/go-github/v58/github"
	"github.com/shurcooL/githubv4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var logger = log.WithField("package", "github")

// defaultPerPage is the largest page size the REST API accepts.
const defaultPerPage = 100

// Client is a thin wrapper over the REST and GraphQL clients, bound to a
// single repository.
type Client struct {
	rest    *github.Client
	graphql *githubv4.Client
	owner   string
	repo    string
	// useGraphQL routes pull request lookups through the GraphQL API.
	useGraphQL bool
}

// Option configures a Client.
type Option func(*Client)

// WithGraphQLLookup makes ListOpenPullRequests use the GraphQL API.
func WithGraphQLLookup() Option {
	return func(c *Client) {
		c.useGraphQL = true
	}
}

// GetToken returns the configured token, falling back to the gh CLI
func GetToken(configured string) (string, error) {
	token := configured

	// Fall back to gh CLI
	if token == "" {
		cmd := exec.Command("gh", "auth", "token")
		output, err := cmd.Output()
		if err == nil {
			token = strings.TrimSpace(string(output))
		}
	}

	if token == "" {
		return "", fmt.Errorf("authentication failed: set GITHUB_TOKEN or run `gh auth login`")
	}

	return token, nil
}

// NewClient creates a GitHub API client authenticated with a bearer token
func NewClient(ctx context.Context, token, owner, repo string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return newClient(tc, owner, repo, opts...)
}

func newClient(httpClient *http.Client, owner, repo string, opts ...Option) *Client {
	c := &Client{
		rest:    github.NewClient(httpClient),
		graphql: githubv4.NewClient(httpClient),
		owner:   owner,
		repo:    repo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// logRate records the remaining API quota reported with a response.
func logRate(resp *github.Response, call string) {
	if resp == nil {
		return
	}
	logger.WithFields(log.Fields{
		"call":      call,
		"remaining": resp.Rate.Remaining,
	}).Debug("API rate limit")
}
