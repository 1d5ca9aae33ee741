// Package form drives answering one form page: it pulls questions from an
// extractor, resolves them in batches, and hands the picks to a selector and
// a notifier.
package form

import (
	"context"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

// Extractor returns the multiple-choice questions on the current page, in
// page order.
type Extractor interface {
	Extract(ctx context.Context) ([]model.Question, error)
}

// Selector applies an answer to the page. questionIdx is the 0-based position
// of the question on the page as returned by the Extractor; option is 1-based.
type Selector interface {
	Select(ctx context.Context, questionIdx int, option int) error
}

// Notifier receives a report after every resolved batch.
type Notifier interface {
	Notify(ctx context.Context, report model.BatchReport) error
}

// BatchResolver resolves an ordered batch to one Answer per question.
type BatchResolver interface {
	ResolveBatch(ctx context.Context, questions []model.Question) []model.Answer
}
