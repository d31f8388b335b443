package timing

import (
	"fmt"
	"strings"
	"time"

	ghclient "github.com/fini-net/gh-check-reporter/internal/github"
)

// RunDuration returns how long a check run took. Zero when either end is
// unknown or the timestamps are out of order.
func RunDuration(check ghclient.CheckRunInfo) time.Duration {
	if check.StartedAt == nil || check.CompletedAt == nil {
		return 0
	}
	d := check.CompletedAt.Sub(*check.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// TotalDuration sums the run durations of checks
func TotalDuration(checks []ghclient.CheckRunInfo) time.Duration {
	var total time.Duration
	for _, check := range checks {
		total += RunDuration(check)
	}
	return total
}

// FormatDuration formats a duration in human-readable form, e.g. "1h 2m 3s"
func FormatDuration(d time.Duration) string {
	// Round to seconds
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}

	units := []struct {
		size   time.Duration
		suffix string
	}{
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
	}

	var parts []string
	for _, u := range units {
		n := d / u.size
		d -= n * u.size
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
		}
	}
	return strings.Join(parts, " ")
}
