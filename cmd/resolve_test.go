package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JittoJoseph/AutoFill-Forms/internal/config"
	"github.com/JittoJoseph/AutoFill-Forms/internal/form"
	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

func sampleSummary() *model.PageSummary {
	return &model.PageSummary{
		Page:       1,
		Answered:   1,
		Unresolved: 1,
		Skipped:    2,
		Results: []model.QuestionResult{
			{Number: 1, Question: "Capital of France?", Answer: model.Resolved(2), AnswerText: "Paris"},
			{Number: 2, Question: "Meaning of life?", Answer: model.Unresolved()},
		},
	}
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	formatSummary(&buf, sampleSummary())

	out := buf.String()
	assert.Contains(t, out, "ANSWER")
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Page 1: 1 answered, 1 unresolved, 2 skipped")
}

func TestWriteReportJSON(t *testing.T) {
	picks := []form.Pick{{Question: 0, Option: 2}}

	var buf bytes.Buffer
	require.NoError(t, writeReportJSON(&buf, resolveReport{PageSummary: sampleSummary(), Selections: picks}))

	var got resolveReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.NotNil(t, got.PageSummary)
	assert.Equal(t, *sampleSummary(), *got.PageSummary)
	assert.Equal(t, picks, got.Selections)
	assert.Contains(t, buf.String(), `"selections"`)
}

func TestWriteReportJSON_NoSelections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportJSON(&buf, resolveReport{PageSummary: sampleSummary()}))
	assert.Contains(t, buf.String(), `"selections": []`)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", truncateText("abc", 5))
	assert.Equal(t, "ab...", truncateText("abcdefgh", 5))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "AIza****wxyz", maskKey("AIza1234wxyz"))
}

func TestKeysCommand_Output(t *testing.T) {
	orig := cfg
	t.Cleanup(func() { cfg = orig })
	cfg = &config.Config{Gemini: config.GeminiConfig{
		APIKeys: []string{"AIzaSyA-first-key-0001", "'AIzaSyB-second-key-0002'"},
		Models:  []string{"gemini-2.5-flash"},
	}}

	var buf bytes.Buffer
	keysCmd.SetOut(&buf)
	t.Cleanup(func() { keysCmd.SetOut(nil) })
	require.NoError(t, keysCmd.RunE(keysCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "1. AIza")
	assert.Contains(t, out, "2. AIza")
	assert.Contains(t, out, "0002")
	assert.NotContains(t, out, "second-key")
	assert.Contains(t, out, "Models: gemini-2.5-flash")
}
