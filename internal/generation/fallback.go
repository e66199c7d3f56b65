package generation

import (
	"context"
	"log/slog"

	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/profile"
)

// FallbackExplainer answers with Fallback whenever Primary fails.
type FallbackExplainer struct {
	primary  Explainer
	fallback Explainer
	logger   *slog.Logger
}

var _ Explainer = (*FallbackExplainer)(nil)

// NewFallbackExplainer wraps primary so that errors are answered by fallback.
func NewFallbackExplainer(primary, fallback Explainer, l *slog.Logger) *FallbackExplainer {
	if l == nil {
		l = slog.Default()
	}
	return &FallbackExplainer{
		primary:  primary,
		fallback: fallback,
		logger:   l.With(slog.String("component", "fallback_explainer")),
	}
}

// Explain implements Explainer.
func (e *FallbackExplainer) Explain(ctx context.Context, snapshot profile.Snapshot) (string, error) {
	text, err := e.primary.Explain(ctx, snapshot)
	if err == nil {
		return text, nil
	}

	// a cancelled request gets no answer at all
	if ctx.Err() != nil {
		return "", err
	}

	logger.FromContextOrDefault(ctx, e.logger).Warn("primary explainer failed, using fallback",
		slog.String("error", err.Error()),
		slog.String("profile_id", snapshot.Profile.ID.String()))
	return e.fallback.Explain(ctx, snapshot)
}
