package mocks

import (
	"context"

	"github.com/phrazzld/scorelab-api/internal/generation"
	"github.com/phrazzld/scorelab-api/internal/profile"
)

// MockExplainer implements generation.Explainer for testing
type MockExplainer struct {
	ExplainFn func(ctx context.Context, snapshot profile.Snapshot) (string, error)

	Text string
	Err  error
}

var _ generation.Explainer = (*MockExplainer)(nil)

// Explain implements generation.Explainer
func (m *MockExplainer) Explain(ctx context.Context, snapshot profile.Snapshot) (string, error) {
	if m.ExplainFn != nil {
		return m.ExplainFn(ctx, snapshot)
	}
	return m.Text, m.Err
}
