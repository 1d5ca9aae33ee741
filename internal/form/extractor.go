package form

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

// FileExtractor reads questions that were exported from a page to a JSON or
// YAML file. The document is either a list of questions or an object with a
// "questions" list.
type FileExtractor struct {
	Path string
}

type questionFile struct {
	Questions []fileQuestion `json:"questions" yaml:"questions"`
}

type fileQuestion struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
}

// Extract implements Extractor.
func (f FileExtractor) Extract(ctx context.Context) ([]model.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "form: read %s", f.Path)
	}
	return ParseQuestions(data, filepath.Ext(f.Path))
}

// ParseQuestions decodes a question document. ext selects the format
// (".yaml"/".yml" for YAML, anything else JSON).
func ParseQuestions(data []byte, ext string) ([]model.Question, error) {
	var raw []fileQuestion

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, eris.Wrap(err, "form: parse yaml")
		}
		if err := decodeYAML(&node, &raw); err != nil {
			return nil, err
		}
	default:
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, eris.Wrap(err, "form: parse json")
			}
		} else {
			var doc questionFile
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, eris.Wrap(err, "form: parse json")
			}
			raw = doc.Questions
		}
	}

	out := make([]model.Question, 0, len(raw))
	for _, q := range raw {
		opts := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			if o = strings.TrimSpace(o); o != "" {
				opts = append(opts, o)
			}
		}
		out = append(out, model.Question{
			Kind:    model.ParseKind(q.Kind),
			Text:    strings.TrimSpace(q.Question),
			Options: opts,
		})
	}
	return out, nil
}

func decodeYAML(node *yaml.Node, raw *[]fileQuestion) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(raw); err != nil {
			return eris.Wrap(err, "form: decode yaml")
		}
	case yaml.MappingNode:
		var doc questionFile
		if err := node.Decode(&doc); err != nil {
			return eris.Wrap(err, "form: decode yaml")
		}
		*raw = doc.Questions
	case 0:
		// empty document
	default:
		return eris.New("form: yaml document must be a list or a mapping")
	}
	return nil
}
