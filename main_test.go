package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{
		"GITHUB_REPOSITORY", "GITHUB_TOKEN", "GH_TOKEN", "GH_API_TOKEN",
		"CHECK_SUITE_ID", "GH_CHECK_SUITE_ID", "HEAD_BRANCH", "GH_HEAD_BRANCH",
		"WORKFLOW_NAME", "GH_WORKFLOW", "HEAD_SHA", "LOG_LEVEL",
	} {
		t.Setenv(env, "")
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"repo", "check-suite-id", "head-branch", "workflow", "head-sha", "pr-lookup", "dry-run", "quiet-on-success", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestRunWithoutHeadBranchSucceeds(t *testing.T) {
	isolateEnv(t)
	// No PATH: a token lookup through the gh CLI would fail
	t.Setenv("PATH", "")

	cmd := newRootCmd()
	// Repository and check suite are invalid; the run must stop before
	// validating them or building an API client.
	cmd.SetArgs([]string{"--workflow", "CI", "--repo", "not-a-repo", "--head-branch", "  "})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "token")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--repo", "owner/repo", "--head-branch", "feature", "--workflow", "CI"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check suite id")
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	isolateEnv(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "loud"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log-level")
}
