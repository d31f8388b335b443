package report

import (
	"fmt"
	"regexp"
	"strings"

	ghclient "github.com/fini-net/gh-check-reporter/internal/github"
)

// NoFailuresMessage is the body of a section whose workflow had no failed jobs.
const NoFailuresMessage = ":white_check_mark: No failures"

var tagPattern = regexp.MustCompile(`<!-- WORKFLOW:(.*?) -->\n`)

// Section is one workflow's block inside a managed comment. Content starts
// with the workflow tag line. Sections parsed from a body that carry no tag
// have an empty Workflow and are kept verbatim.
type Section struct {
	Workflow string
	Content  string
}

// Tag returns the marker line that identifies a workflow's section.
func Tag(workflow string) string {
	return fmt.Sprintf("<!-- WORKFLOW:%s -->\n", workflow)
}

// RenderSection renders the failed runs of a workflow as a tagged markdown
// block. Rows keep the order of failed.
func RenderSection(workflow string, failed []ghclient.CheckRunInfo) string {
	var b strings.Builder

	b.WriteString(Tag(workflow))
	fmt.Fprintf(&b, "### %s\n", workflow)

	if len(failed) == 0 {
		b.WriteString(NoFailuresMessage)
		return b.String()
	}

	b.WriteString("| job | url |\n")
	b.WriteString("|-----|-----|")
	for _, run := range failed {
		fmt.Fprintf(&b, "\n| %s | %s |", escapeCell(run.JobTitle()), run.HTMLURL)
	}

	return b.String()
}

// NewSection renders a section and keeps its workflow name alongside.
func NewSection(workflow string, failed []ghclient.CheckRunInfo) Section {
	return Section{
		Workflow: workflow,
		Content:  RenderSection(workflow, failed),
	}
}

// parseSection reads the workflow tag out of a raw segment.
func parseSection(raw string) Section {
	s := Section{Content: raw}
	if m := tagPattern.FindStringSubmatch(raw); m != nil {
		s.Workflow = m[1]
	}
	return s
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
