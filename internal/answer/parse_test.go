package answer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

func TestParseAnswers_Valid(t *testing.T) {
	pairs, err := ParseAnswers(`{"answers":[{"q":1,"answer":3},{"q":2,"answer":1}]}`)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{1, 3}, {2, 1}}, pairs)
}

func TestParseAnswers_MarkdownFence(t *testing.T) {
	pairs, err := ParseAnswers("```json\n{\"answers\":[{\"q\":1,\"answer\":2}]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{1, 2}}, pairs)
}

func TestParseAnswers_LenientNumbers(t *testing.T) {
	pairs, err := ParseAnswers(`{"answers":[{"q":"1","answer":"2"},{"q":2.0,"answer":4}]}`)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{1, 2}, {2, 4}}, pairs)
}

func TestParseAnswers_FractionalNumbersTruncate(t *testing.T) {
	pairs, err := ParseAnswers(`{"answers":[{"q":1,"answer":2.5},{"q":2.9,"answer":1},{"q":3,"answer":-0.5}]}`)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{1, 2}, {2, 1}, {3, 0}}, pairs)
}

func TestParseAnswers_DropsMalformedItems(t *testing.T) {
	text := `{"answers":[{"q":1},{"q":"x","answer":1},{"q":1,"answer":"2.5"},{"q":1,"answer":true},"junk",{"q":3,"answer":null},{"q":2,"answer":2}]}`
	pairs, err := ParseAnswers(text)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{2, 2}}, pairs)
}

func TestParseAnswers_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"prose":          "The answer is 3.",
		"array":          `[{"q":1,"answer":1}]`,
		"missing list":   `{"result":[]}`,
		"null list":      `{"answers":null}`,
		"wrong type":     `{"answers":"1"}`,
		"truncated json": `{"answers":[{"q":1,"answer":`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAnswers(text)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
			assert.Equal(t, text, pe.Raw)
		})
	}
}

func TestApply_BoundsChecks(t *testing.T) {
	questions := []model.Question{
		{Text: "a", Options: []string{"x", "y"}},
		{Text: "b", Options: []string{"x", "y", "z"}},
	}
	pairs := []Pair{
		{Question: 0, Option: 1},
		{Question: 3, Option: 1},
		{Question: 1, Option: 5},
		{Question: 1, Option: 0},
		{Question: 2, Option: 3},
	}

	got := Apply(questions, pairs)
	assert.Equal(t, []model.Answer{model.Unresolved(), model.Resolved(3)}, got)
}

func TestApply_LastValidWins(t *testing.T) {
	questions := []model.Question{{Text: "a", Options: []string{"x", "y"}}}
	got := Apply(questions, []Pair{{1, 1}, {1, 2}, {1, 9}})
	assert.Equal(t, []model.Answer{model.Resolved(2)}, got)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("Here you go: {\"a\":1} cheers"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", cleanJSON("  plain "))
}
