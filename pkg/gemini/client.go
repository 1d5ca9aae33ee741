// Package gemini wraps the Google Gemini API behind a narrow text-generation
// interface.
package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/rotisserie/eris"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/api/googleapi"

	"github.com/JittoJoseph/AutoFill-Forms/internal/resilience"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 30 * time.Second

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = eris.New("gemini: empty response")

// Client generates a completion for a prompt with the named model. A Client
// is bound to a single API key.
type Client interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Factory builds a Client for an API key.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// contentGenerator is the subset of llms.Model the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Option configures the client.
type Option func(*llmClient)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *llmClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithJSONMode toggles the JSON response MIME type. Enabled by default.
func WithJSONMode(enabled bool) Option {
	return func(c *llmClient) {
		c.jsonMode = enabled
	}
}

type llmClient struct {
	llm      contentGenerator
	timeout  time.Duration
	jsonMode bool
}

// NewClient creates a Gemini client for apiKey backed by langchaingo's
// googleai provider.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, eris.New("gemini: api key is required")
	}
	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "gemini: new client")
	}
	return newLLMClient(llm, opts...), nil
}

// NewFactory returns a Factory that applies opts to every client it builds.
func NewFactory(opts ...Option) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		return NewClient(ctx, apiKey, opts...)
	}
}

func newLLMClient(llm contentGenerator, opts ...Option) *llmClient {
	c := &llmClient{
		llm:      llm,
		timeout:  DefaultTimeout,
		jsonMode: true,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *llmClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	callOpts := []llms.CallOption{llms.WithModel(model)}
	if c.jsonMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.llm.GenerateContent(ctx, msgs, callOpts...)
	if err != nil {
		if errors.Is(err, googleai.ErrNoContentInResponse) {
			return "", ErrEmptyResponse
		}
		wrapped := eris.Wrapf(err, "gemini: generate %s", model)
		if code, ok := httpStatus(err); ok && resilience.IsTransientHTTPStatus(code) {
			return "", resilience.NewTransientError(wrapped, code)
		}
		return "", wrapped
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// httpStatus returns the HTTP status code carried by a Google API error.
func httpStatus(err error) (int, bool) {
	var ae *apierror.APIError
	if errors.As(err, &ae) {
		if code := ae.HTTPCode(); code > 0 {
			return code, true
		}
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) && ge.Code > 0 {
		return ge.Code, true
	}
	return 0, false
}
