package answer

import (
	"fmt"
	"strings"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

const instructions = "You are answering multiple-choice questions. " +
	"Return ONLY valid JSON in this exact format: " +
	`{"answers":[{"q":1,"answer":<number>},...]}` + "\n" +
	"Rules:\n" +
	"- answer must be the option number (1-based)\n" +
	"- include every question exactly once\n" +
	"- no extra keys, no markdown, no commentary\n\n"

// BuildPrompt renders a batch as one request. Questions are numbered from 1
// within the batch regardless of their position on the page.
func BuildPrompt(questions []model.Question) string {
	items := make([]string, 0, len(questions))
	for i, q := range questions {
		var b strings.Builder
		fmt.Fprintf(&b, "Q%d: %s\nOptions:", i+1, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "\n%d. %s", j+1, opt)
		}
		items = append(items, b.String())
	}
	return instructions + strings.Join(items, "\n\n")
}
