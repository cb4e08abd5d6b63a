package responder

import (
	"context"

	"github.com/calliof/switchboard/internal/domain"
)

// MockClient is a test double for Client.
type MockClient struct {
	ProviderName string
	CompleteFunc func(ctx context.Context, turns []domain.Turn) (domain.Reply, error)
}

func (m *MockClient) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

func (m *MockClient) Complete(ctx context.Context, turns []domain.Turn) (domain.Reply, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, turns)
	}
	return domain.Reply{Message: "mock reply"}, nil
}
