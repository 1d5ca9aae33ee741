package answer

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/mock"

	"github.com/JittoJoseph/AutoFill-Forms/pkg/gemini"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

// mockFactory hands out one mockClient per key and counts builds.
type mockFactory struct {
	mu      sync.Mutex
	clients map[string]*mockClient
	failing map[string]bool
	builds  []string
}

func newMockFactory(keys ...string) *mockFactory {
	f := &mockFactory{
		clients: make(map[string]*mockClient),
		failing: make(map[string]bool),
	}
	for _, k := range keys {
		f.clients[k] = &mockClient{}
	}
	return f
}

func (f *mockFactory) client(key string) *mockClient {
	return f.clients[key]
}

func (f *mockFactory) build(_ context.Context, key string) (gemini.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds = append(f.builds, key)
	if f.failing[key] {
		return nil, eris.New("bad key")
	}
	c, ok := f.clients[key]
	if !ok {
		return nil, eris.Errorf("unexpected key %q", key)
	}
	return c, nil
}

func (f *mockFactory) buildCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.builds)
}
