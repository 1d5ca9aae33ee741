package form

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/JittoJoseph/AutoFill-Forms/internal/model"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context) ([]model.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveBatch(ctx context.Context, questions []model.Question) []model.Answer {
	args := m.Called(ctx, questions)
	return args.Get(0).([]model.Answer)
}

type mockSelector struct {
	mock.Mock
}

func (m *mockSelector) Select(ctx context.Context, questionIdx int, option int) error {
	args := m.Called(ctx, questionIdx, option)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, report model.BatchReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
