package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

const (
	maxQuestionChars = 200
	maxAnswerChars   = 500
)

// LogNotifier writes one structured log record per question of a batch.
type LogNotifier struct {
	Logger *zap.Logger // zap.L() when nil
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, report model.BatchReport) error {
	log := n.Logger
	if log == nil {
		log = zap.L()
	}
	log = log.With(
		zap.Int("page", report.Page),
		zap.Int("batch_start", report.Start),
		zap.Int("batch_end", report.End()),
	)

	log.Info("batch results", zap.Int("resolved", countAnswered(report.Results)), zap.Int("total", len(report.Results)))
	for _, r := range report.Results {
		answer := r.AnswerText
		if answer == "" {
			answer = "(no answer)"
		}
		log.Info("question result",
			zap.Int("question_number", r.Number),
			zap.String("question", truncate(r.Question, maxQuestionChars)),
			zap.String("answer_number", r.Answer.String()),
			zap.String("answer", truncate(answer, maxAnswerChars)),
		)
	}
	return nil
}

func countAnswered(results []model.QuestionResult) int {
	n := 0
	for _, r := range results {
		if r.Answer.Valid {
			n++
		}
	}
	return n
}

// truncate shortens s to limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
