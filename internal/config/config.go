package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	LookupREST    = "rest"
	LookupGraphQL = "graphql"
)

type ColorConfig struct {
	Success int `mapstructure:"success"`
	Failure int `mapstructure:"failure"`
	Info    int `mapstructure:"info"`
}

type Config struct {
	Repository     string      `mapstructure:"repository"`
	Token          string      `mapstructure:"token"`
	CheckSuiteID   int64       `mapstructure:"check_suite_id"`
	HeadBranch     string      `mapstructure:"head_branch"`
	WorkflowName   string      `mapstructure:"workflow_name"`
	HeadSHA        string      `mapstructure:"head_sha"`
	PRLookup       string      `mapstructure:"pr_lookup"`
	DryRun         bool        `mapstructure:"dry_run"`
	QuietOnSuccess bool        `mapstructure:"quiet_on_success"`
	LogLevel       string      `mapstructure:"log_level"`
	Colors         ColorConfig `mapstructure:"colors"`
}

// envBindings maps config keys to the environment variables a CI job exports.
// The first non-empty variable wins; the GH_* names are the ones existing
// workflow_run jobs already export.
var envBindings = map[string][]string{
	"repository":     {"GITHUB_REPOSITORY"},
	"token":          {"GITHUB_TOKEN", "GH_TOKEN", "GH_API_TOKEN"},
	"check_suite_id": {"CHECK_SUITE_ID", "GH_CHECK_SUITE_ID"},
	"head_branch":    {"HEAD_BRANCH", "GH_HEAD_BRANCH"},
	"workflow_name":  {"WORKFLOW_NAME", "GH_WORKFLOW"},
	"head_sha":       {"HEAD_SHA"},
	"log_level":      {"LOG_LEVEL"},
}

// flagBindings maps config keys to command-line flag names.
var flagBindings = map[string]string{
	"repository":       "repo",
	"check_suite_id":   "check-suite-id",
	"head_branch":      "head-branch",
	"workflow_name":    "workflow",
	"head_sha":         "head-sha",
	"pr_lookup":        "pr-lookup",
	"dry_run":          "dry-run",
	"quiet_on_success": "quiet-on-success",
	"log_level":        "log-level",
}

// Load reads configuration from defaults, the optional config file,
// environment variables and flags, in increasing order of precedence.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("pr_lookup", LookupREST)
	v.SetDefault("log_level", "info")
	v.SetDefault("colors.success", 10) // Green
	v.SetDefault("colors.failure", 9)  // Red
	v.SetDefault("colors.info", 12)    // Blue

	// Config location: ~/.config/gh-check-reporter/config.yaml
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "gh-check-reporter")
	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Ignore errors if config doesn't exist - we'll use defaults
	_ = v.ReadInConfig()

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.HeadBranch = strings.TrimSpace(cfg.HeadBranch)
	cfg.WorkflowName = strings.TrimSpace(cfg.WorkflowName)
	cfg.PRLookup = strings.ToLower(strings.TrimSpace(cfg.PRLookup))

	return &cfg, nil
}

// Enabled reports whether the run has a head branch to report on. Runs not
// triggered by a pull request (pushes to trunk) have none.
func (c *Config) Enabled() bool {
	return c.HeadBranch != ""
}

// Validate checks the values required to talk to the API.
func (c *Config) Validate() error {
	if _, _, err := splitRepository(c.Repository); err != nil {
		return err
	}
	if c.CheckSuiteID <= 0 {
		return fmt.Errorf("check suite id must be positive, got %d", c.CheckSuiteID)
	}
	if c.WorkflowName == "" {
		return fmt.Errorf("workflow name is required")
	}
	if c.Token == "" {
		return fmt.Errorf("authentication failed: set GITHUB_TOKEN or run `gh auth login`")
	}
	switch c.PRLookup {
	case LookupREST, LookupGraphQL:
	default:
		return fmt.Errorf("unknown pull request lookup %q (want %s or %s)", c.PRLookup, LookupREST, LookupGraphQL)
	}
	return nil
}

// Owner returns the owner half of the repository identifier.
func (c *Config) Owner() string {
	owner, _, _ := splitRepository(c.Repository)
	return owner
}

// Name returns the name half of the repository identifier.
func (c *Config) Name() string {
	_, name, _ := splitRepository(c.Repository)
	return name
}

func splitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be in owner/name form, got %q", repository)
	}
	return parts[0], parts[1], nil
}
