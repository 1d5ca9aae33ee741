package model

// QuestionResult is one answered (or unanswered) question as reported to the
// notifier.
type QuestionResult struct {
	Number     int    `json:"question_number"` // 1-based, page-wide
	Question   string `json:"question"`
	Answer     Answer `json:"answer"`
	AnswerText string `json:"answer_text,omitempty"`
}

// BatchReport summarises one resolved batch of a page.
type BatchReport struct {
	Page    int              `json:"page"`
	Start   int              `json:"batch_start"` // Number of the first question in the batch
	Results []QuestionResult `json:"results"`
}

// End returns the Number of the last question in the batch, or Start when
// the batch is empty.
func (r BatchReport) End() int {
	if len(r.Results) == 0 {
		return r.Start
	}
	return r.Results[len(r.Results)-1].Number
}

// PageSummary is the outcome of answering every question on one page.
type PageSummary struct {
	Page       int              `json:"page"`
	Answered   int              `json:"answered"`
	Unresolved int              `json:"unresolved"`
	Skipped    int              `json:"skipped"`
	Results    []QuestionResult `json:"results"`
}
