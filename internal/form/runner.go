package form

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

// DefaultBatchSize is the number of questions sent per resolver call.
const DefaultBatchSize = 10

// Runner answers the questions of a page batch by batch.
type Runner struct {
	extractor Extractor
	resolver  BatchResolver
	selector  Selector
	notifier  Notifier
	batchSize int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBatchSize overrides DefaultBatchSize. Non-positive values are ignored.
func WithBatchSize(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithNotifier sets the notifier; without one reports are dropped.
func WithNotifier(n Notifier) RunnerOption {
	return func(r *Runner) {
		r.notifier = n
	}
}

// NewRunner creates a Runner. extractor, resolver and selector are required.
func NewRunner(extractor Extractor, resolver BatchResolver, selector Selector, opts ...RunnerOption) (*Runner, error) {
	if extractor == nil || resolver == nil || selector == nil {
		return nil, eris.New("form: extractor, resolver and selector are required")
	}
	r := &Runner{
		extractor: extractor,
		resolver:  resolver,
		selector:  selector,
		batchSize: DefaultBatchSize,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// RunPage answers every resolvable question on the current page. Questions
// without options are counted as skipped and never sent to the resolver.
// Only extraction failures are returned; selection and notification errors
// are logged.
func (r *Runner) RunPage(ctx context.Context, page int) (*model.PageSummary, error) {
	log := zap.L().With(zap.Int("page", page))

	questions, err := r.extractor.Extract(ctx)
	if err != nil {
		return nil, eris.Wrapf(err, "form: extract page %d", page)
	}

	resolvable, positions, skipped := model.FilterResolvable(questions)
	log.Info("form: questions detected",
		zap.Int("questions", len(questions)),
		zap.Int("resolvable", len(resolvable)),
	)

	summary := &model.PageSummary{
		Page:    page,
		Skipped: len(skipped),
		Results: make([]model.QuestionResult, 0, len(resolvable)),
	}

	for start := 0; start < len(resolvable); start += r.batchSize {
		end := min(start+r.batchSize, len(resolvable))
		batch := resolvable[start:end]

		answers := r.resolver.ResolveBatch(ctx, batch)
		report := model.BatchReport{
			Page:    page,
			Start:   start + 1,
			Results: make([]model.QuestionResult, len(batch)),
		}

		for i, q := range batch {
			var a model.Answer
			if i < len(answers) {
				a = answers[i]
			}
			pos := positions[start+i]
			report.Results[i] = model.QuestionResult{
				Number:   start + i + 1,
				Question: q.Text,
				Answer:   a,
			}

			opt, ok := a.Get()
			if !ok {
				summary.Unresolved++
				log.Warn("form: question unresolved, skipping", zap.Int("question", start+i+1))
				continue
			}
			report.Results[i].AnswerText = q.OptionLabel(opt)
			summary.Answered++

			if err := r.selector.Select(ctx, pos, opt); err != nil {
				log.Warn("form: selection failed",
					zap.Int("question", start+i+1),
					zap.Int("option", opt),
					zap.Error(err),
				)
			}
		}

		summary.Results = append(summary.Results, report.Results...)

		if r.notifier != nil {
			if err := r.notifier.Notify(ctx, report); err != nil {
				log.Warn("form: notify failed", zap.Error(err))
			}
		}
	}

	return summary, nil
}
