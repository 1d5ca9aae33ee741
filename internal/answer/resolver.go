// Package answer resolves batches of multiple-choice questions to option
// indices with a Gemini model, rotating across API keys and models when the
// service throttles or misbehaves.
package answer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
	"github.com/JittoJoseph/AutoFill-Forms/internal/resilience"
	"github.com/JittoJoseph/AutoFill-Forms/pkg/gemini"
)

// DefaultRounds is how many passes over the key list a batch gets before it
// is given up as unresolved.
const DefaultRounds = 20

// DefaultModels is the model priority list, most preferred first.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-3-flash-preview",
}

// Config configures a Resolver.
type Config struct {
	Keys    []string       // API keys in rotation order; may be empty
	Models  []string       // model IDs by priority; DefaultModels when empty
	Rounds  int            // DefaultRounds when <= 0
	Factory gemini.Factory // builds a client per key
}

// Resolver answers question batches. The key rotation cursor lives on the
// Resolver and survives across calls; a Resolver is safe for concurrent use.
type Resolver struct {
	keys    []string
	models  []string
	rounds  int
	factory gemini.Factory

	mu     sync.Mutex
	cursor int

	clientMu sync.Mutex
	clients  map[int]gemini.Client
}

// New validates cfg and returns a Resolver starting at the first key.
func New(cfg Config) (*Resolver, error) {
	if cfg.Factory == nil {
		return nil, eris.New("answer: client factory is required")
	}
	models := cfg.Models
	if len(models) == 0 {
		models = DefaultModels
	}
	rounds := cfg.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return &Resolver{
		keys:    append([]string(nil), cfg.Keys...),
		models:  append([]string(nil), models...),
		rounds:  rounds,
		factory: cfg.Factory,
		clients: make(map[int]gemini.Client),
	}, nil
}

// Cursor returns the index of the key the next call starts from.
func (r *Resolver) Cursor() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// ResolveBatch returns one Answer per question, in input order. It never
// fails: questions the service could not answer come back unresolved.
func (r *Resolver) ResolveBatch(ctx context.Context, questions []model.Question) []model.Answer {
	if len(questions) == 0 {
		return []model.Answer{}
	}
	if len(r.keys) == 0 {
		zap.L().Warn("answer: no API keys configured, skipping batch",
			zap.Int("questions", len(questions)),
		)
		return model.Unresolveds(len(questions))
	}

	log := zap.L().With(
		zap.String("run_id", uuid.NewString()),
		zap.Int("questions", len(questions)),
	)
	prompt := BuildPrompt(questions)

	active := r.Cursor()
	for round := 0; round < r.rounds; round++ {
		if err := ctx.Err(); err != nil {
			log.Warn("answer: batch abandoned", zap.Error(err))
			return model.Unresolveds(len(questions))
		}

		if answers, ok := r.tryKey(ctx, log, active, prompt, questions); ok {
			return answers
		}
		// Cancellation is not a key failure.
		if ctx.Err() != nil {
			continue
		}
		active = r.advance(active)
	}

	log.Warn("answer: all rounds exhausted, batch unresolved", zap.Int("rounds", r.rounds))
	return model.Unresolveds(len(questions))
}

// tryKey walks the model list with the key at idx. It returns ok once a
// response answers at least one question.
func (r *Resolver) tryKey(ctx context.Context, log *zap.Logger, idx int, prompt string, questions []model.Question) ([]model.Answer, bool) {
	log = log.With(zap.Int("key", idx+1))

	client, err := r.client(ctx, idx)
	if err != nil {
		log.Warn("answer: client unavailable, switching key", zap.Error(err))
		return nil, false
	}

	for _, m := range r.models {
		text, err := client.Generate(ctx, m, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, false
			}
			class := resilience.Classify(err)
			if class == resilience.ClassQuota {
				log.Warn("answer: quota exceeded, switching key", zap.String("model", m))
				return nil, false
			}
			if errors.Is(err, gemini.ErrEmptyResponse) {
				log.Warn("answer: no valid response, trying next model", zap.String("model", m))
			} else {
				log.Warn("answer: model error, trying next model",
					zap.String("model", m),
					zap.Stringer("class", class),
					zap.Error(err),
				)
			}
			continue
		}

		pairs, err := ParseAnswers(text)
		if err != nil {
			log.Warn("answer: unparseable response, trying next model", zap.String("model", m), zap.Error(err))
			continue
		}

		answers := Apply(questions, pairs)
		if n := model.CountResolved(answers); n > 0 {
			log.Info("answer: batch resolved",
				zap.String("model", m),
				zap.Int("resolved", n),
			)
			return answers, true
		}
		log.Warn("answer: response had no usable answers, trying next model", zap.String("model", m))
	}
	return nil, false
}

// advance moves the shared cursor one past from and returns it.
func (r *Resolver) advance(from int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = (from + 1) % len(r.keys)
	return r.cursor
}

func (r *Resolver) client(ctx context.Context, idx int) (gemini.Client, error) {
	r.clientMu.Lock()
	defer r.clientMu.Unlock()

	if c, ok := r.clients[idx]; ok {
		return c, nil
	}
	c, err := r.factory(ctx, r.keys[idx])
	if err != nil {
		return nil, eris.Wrapf(err, "answer: build client for key %d", idx+1)
	}
	r.clients[idx] = c
	return c, nil
}
