package form

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := LogNotifier{Logger: zap.New(core)}

	report := model.BatchReport{
		Page:  2,
		Start: 11,
		Results: []model.QuestionResult{
			{Number: 11, Question: strings.Repeat("x", 250), Answer: model.Resolved(2), AnswerText: "Paris"},
			{Number: 12, Question: "hard one", Answer: model.Unresolved()},
		},
	}
	require.NoError(t, n.Notify(context.Background(), report))

	entries := logs.All()
	require.Len(t, entries, 3)

	head := entries[0].ContextMap()
	assert.Equal(t, "batch results", entries[0].Message)
	assert.EqualValues(t, 12, head["batch_end"])
	assert.EqualValues(t, 1, head["resolved"])

	first := entries[1].ContextMap()
	assert.Len(t, first["question"], 200)
	assert.Equal(t, "2", first["answer_number"])
	assert.Equal(t, "Paris", first["answer"])

	second := entries[2].ContextMap()
	assert.Equal(t, "N/A", second["answer_number"])
	assert.Equal(t, "(no answer)", second["answer"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijkl", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
