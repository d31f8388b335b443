package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fini-net/gh-check-reporter/internal/config"
	"github.com/fini-net/gh-check-reporter/internal/display"
	ghclient "github.com/fini-net/gh-check-reporter/internal/github"
	"github.com/fini-net/gh-check-reporter/internal/notifier"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var Version = "dev"

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gh-check-reporter",
		Short: "Report failed check runs of a check suite on its pull request",
		Long: `gh-check-reporter runs after a workflow's check suite completes. It collects
the failed check runs, finds the open pull request for the head branch and
keeps one status comment per pull request up to date, with a section per
workflow.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd)
		},
	}

	flags := cmd.Flags()
	flags.String("repo", "", "Repository in owner/name form (default $GITHUB_REPOSITORY or git remote origin)")
	flags.Int64("check-suite-id", 0, "Check suite whose failed runs are reported (default $CHECK_SUITE_ID or $GH_CHECK_SUITE_ID)")
	flags.String("head-branch", "", "Head branch of the pull request; empty disables the run (default $HEAD_BRANCH or $GH_HEAD_BRANCH)")
	flags.String("workflow", "", "Workflow name used for the comment section (default $WORKFLOW_NAME or $GH_WORKFLOW)")
	flags.String("head-sha", "", "Head commit shown in the comment header (default $HEAD_SHA)")
	flags.String("pr-lookup", config.LookupREST, "Pull request lookup API: rest or graphql")
	flags.Bool("dry-run", false, "Print the comment instead of creating or updating it")
	flags.Bool("quiet-on-success", false, "Do not create a new comment when nothing failed")
	flags.String("log-level", "info", "Log level (trace,debug,info,warn,error)")

	return cmd
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("cannot parse log-level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)

	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)
	return nil
}

func consoleStyles(f *os.File, cfg *config.Config) display.Styles {
	colorize := term.IsTerminal(int(f.Fd()))
	return display.NewStyles(f, colorize, cfg.Colors.Success, cfg.Colors.Failure, cfg.Colors.Info)
}

func runReport(ctx context.Context, cmd *cobra.Command) error {
	// Load configuration
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := setupLogging(cfg.LogLevel); err != nil {
		return err
	}

	// The only disabled-run guard: it runs before token lookup, validation and
	// client construction, so a run without a head branch makes no API calls.
	if !cfg.Enabled() {
		log.Info("No head branch, run was not triggered by a pull request; nothing to report")
		return nil
	}

	// Fall back to the checkout's origin remote
	if cfg.Repository == "" {
		owner, repo, err := ghclient.ParseOwnerRepo()
		if err != nil {
			return fmt.Errorf("failed to determine repository: %w", err)
		}
		cfg.Repository = owner + "/" + repo
	}

	cfg.Token, err = ghclient.GetToken(cfg.Token)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var opts []ghclient.Option
	if cfg.PRLookup == config.LookupGraphQL {
		opts = append(opts, ghclient.WithGraphQLLookup())
	}
	client := ghclient.NewClient(ctx, cfg.Token, cfg.Owner(), cfg.Name(), opts...)

	// Summary goes to stderr next to the logs; only the dry-run preview is stdout
	printer := display.NewPrinter(
		os.Stderr, consoleStyles(os.Stderr, cfg),
		os.Stdout, consoleStyles(os.Stdout, cfg),
	)

	results, err := notifier.New(client, cfg, printer).Run(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		log.WithFields(log.Fields{
			"pr":      r.PRNumber,
			"comment": r.CommentID,
			"action":  r.Action,
		}).Debug("Finished pull request")
	}
	return nil
}
