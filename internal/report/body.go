package report

import (
	"strings"
)

const (
	// Separator splits a managed comment body into segments.
	Separator = "\n<!-- SEPARATOR -->\n"
	// SignatureMarker identifies comments owned by this tool.
	SignatureMarker = "<!-- gh-check-reporter:managed -->"
)

// Signature returns the header written at the top of every managed comment.
func Signature(headSHA string) string {
	title := "**CI failure report**"
	if headSHA != "" {
		title += " for commit `" + shortSHA(headSHA) + "`"
	}
	return SignatureMarker + "\n" + title
}

// IsManaged reports whether a comment body was written by this tool.
func IsManaged(body string) bool {
	return strings.Contains(body, SignatureMarker)
}

// Body is the ordered list of sections of a managed comment, without its
// signature.
type Body struct {
	Sections []Section
}

// ParseBody splits a comment body into sections. Signature segments are
// dropped wherever they appear, as are blank segments.
func ParseBody(raw string) Body {
	var body Body
	for _, segment := range strings.Split(raw, Separator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		section := parseSection(segment)
		if section.Workflow == "" && IsManaged(segment) {
			continue
		}
		body.Sections = append(body.Sections, section)
	}
	return body
}

// Upsert replaces the first section of the same workflow in place, or
// appends s when there is none. It reports whether a section was replaced.
// Later duplicates of the workflow are left alone.
func (b *Body) Upsert(s Section) bool {
	for i := range b.Sections {
		if b.Sections[i].Workflow != "" && b.Sections[i].Workflow == s.Workflow {
			b.Sections[i] = s
			return true
		}
	}
	b.Sections = append(b.Sections, s)
	return false
}

// Workflows lists the workflow of every tagged section, in order.
func (b Body) Workflows() []string {
	var names []string
	for _, s := range b.Sections {
		if s.Workflow != "" {
			names = append(names, s.Workflow)
		}
	}
	return names
}

// Render serializes the body with signature as its first segment.
func (b Body) Render(signature string) string {
	parts := make([]string, 0, len(b.Sections)+1)
	parts = append(parts, signature)
	for _, s := range b.Sections {
		parts = append(parts, s.Content)
	}
	return strings.Join(parts, Separator)
}

// MergeSection merges a rendered section into an existing comment body.
// A nil existing body starts a new comment.
func MergeSection(existing *string, section Section, signature string) string {
	var body Body
	if existing != nil {
		body = ParseBody(*existing)
	}
	body.Upsert(section)
	return body.Render(signature)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
