package answer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

// Pair is one {question, option} entry of a model response, both 1-based.
type Pair struct {
	Question int
	Option   int
}

// ParseError reports a response that is not the expected JSON document.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "answer: unparseable response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type responseItem struct {
	Q      json.RawMessage `json:"q"`
	Answer json.RawMessage `json:"answer"`
}

type response struct {
	Answers *[]json.RawMessage `json:"answers"`
}

// ParseAnswers decodes a response into pairs. It fails with *ParseError
// when the text holds no JSON object with an "answers" list; individual
// entries that are malformed are dropped instead.
func ParseAnswers(text string) ([]Pair, error) {
	cleaned := cleanJSON(text)

	var resp response
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&resp); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if resp.Answers == nil {
		return nil, &ParseError{Raw: text, Err: eris.New(`missing "answers" list`)}
	}

	pairs := make([]Pair, 0, len(*resp.Answers))
	for _, raw := range *resp.Answers {
		var item responseItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		q, ok := parseIndex(item.Q)
		if !ok {
			continue
		}
		opt, ok := parseIndex(item.Answer)
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Question: q, Option: opt})
	}
	return pairs, nil
}

// Apply maps pairs onto a result slice for questions. Pairs naming an
// unknown question or an option outside that question's range are ignored.
// A later pair for the same question overrides an earlier one.
func Apply(questions []model.Question, pairs []Pair) []model.Answer {
	out := model.Unresolveds(len(questions))
	for _, p := range pairs {
		idx := p.Question - 1
		if idx < 0 || idx >= len(questions) {
			continue
		}
		if !questions[idx].ValidOption(p.Option) {
			continue
		}
		out[idx] = model.Resolved(p.Option)
	}
	return out
}

// parseIndex accepts a JSON number, truncated toward zero, or a string
// holding a decimal integer.
func parseIndex(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return n, true
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
