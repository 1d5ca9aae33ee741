package model

import "strings"

// Kind is the control type a question is answered with.
type Kind string

const (
	KindSingle Kind = "single" // radio group
	KindMulti  Kind = "multi"  // checkbox group
)

// ParseKind maps the labels used by extractors onto a Kind. Unknown labels
// fall back to KindSingle.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multi", "checkbox", "multi-select":
		return KindMulti
	default:
		return KindSingle
	}
}

// Question is one multiple-choice item extracted from a form page. The order
// of Options defines the 1-based index space shared with the selector.
type Question struct {
	Kind    Kind     `json:"kind" yaml:"kind"`
	Text    string   `json:"question" yaml:"question"`
	Options []string `json:"options" yaml:"options"`
}

// Resolvable reports whether the question has anything to choose from.
func (q Question) Resolvable() bool {
	return len(q.Options) > 0
}

// ValidOption reports whether n is a 1-based index into Options.
func (q Question) ValidOption(n int) bool {
	return n >= 1 && n <= len(q.Options)
}

// OptionLabel returns the label of the 1-based option n, or "" when n is out
// of range.
func (q Question) OptionLabel(n int) string {
	if !q.ValidOption(n) {
		return ""
	}
	return q.Options[n-1]
}

// FilterResolvable splits questions into those with options and the page
// positions of those without.
func FilterResolvable(questions []Question) (resolvable []Question, positions []int, skipped []int) {
	for i, q := range questions {
		if !q.Resolvable() {
			skipped = append(skipped, i)
			continue
		}
		resolvable = append(resolvable, q)
		positions = append(positions, i)
	}
	return resolvable, positions, skipped
}
