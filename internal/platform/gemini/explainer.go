package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/phrazzld/scorelab-api/internal/config"
	"github.com/phrazzld/scorelab-api/internal/generation"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"google.golang.org/genai"
)

// contentGenerator is the subset of genai.Models used by the explainer.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiExplainer implements generation.Explainer using the Gemini API.
type GeminiExplainer struct {
	logger    *slog.Logger
	config    config.LLMConfig
	prompt    *template.Template
	client    contentGenerator
	baseDelay time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ generation.Explainer = (*GeminiExplainer)(nil)

// NewGeminiExplainer creates a Gemini client and an explainer around it.
func NewGeminiExplainer(ctx context.Context, l *slog.Logger, cfg config.LLMConfig) (*GeminiExplainer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newExplainer(l, cfg, client.Models)
}

func newExplainer(l *slog.Logger, cfg config.LLMConfig, client contentGenerator) (*GeminiExplainer, error) {
	if l == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := template.New("prompt").Funcs(generation.TemplateFuncs()).Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	return &GeminiExplainer{
		logger:    l.With(slog.String("component", "gemini_explainer")),
		config:    cfg,
		prompt:    prompt,
		client:    client,
		baseDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Explain implements generation.Explainer.
func (g *GeminiExplainer) Explain(ctx context.Context, snapshot profile.Snapshot) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := generation.RenderPrompt(g.prompt, snapshot)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrExplanationFailed, err)
	}

	log.Debug("prompt rendered",
		slog.String("profile_id", snapshot.Profile.ID.String()),
		slog.Int("prompt_length", len(prompt)))

	return g.callWithRetry(ctx, prompt)
}

// callWithRetry sends the prompt, retrying transient failures up to
// config.MaxRetries times. Delay before retry n is baseDelay * 2^n scaled by
// a random factor in [0.5, 1.0).
func (g *GeminiExplainer) callWithRetry(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	log := logger.FromContextOrDefault(ctx, g.logger)

	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := g.baseDelay
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
	}

	for attempt := 0; ; attempt++ {
		log.Info("calling Gemini API",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1))

		resp, err := g.client.GenerateContent(ctx, g.config.ModelName, genai.Text(prompt), genCfg)
		if err == nil {
			text, perr := extractText(resp)
			if perr != nil {
				log.Warn("permanent Gemini failure, not retrying", slog.String("error", perr.Error()))
				return "", perr
			}
			log.Info("Gemini API call successful", slog.Int("attempt", attempt+1))
			return text, nil
		}

		log.Error("Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		delay := g.backoff(baseDelay, attempt)
		log.Info("retrying after delay",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			log.Warn("Gemini call cancelled during retry delay", slog.String("ctx_err", ctx.Err().Error()))
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

func (g *GeminiExplainer) backoff(base time.Duration, attempt int) time.Duration {
	g.rngMu.Lock()
	jitter := 0.5 + g.rng.Float64()*0.5
	g.rngMu.Unlock()
	return time.Duration(float64(base) * math.Pow(2, float64(attempt)) * jitter)
}

// extractText returns the text of the first candidate. Malformed and blocked
// responses wrap generation.ErrInvalidResponse or generation.ErrContentBlocked.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}
