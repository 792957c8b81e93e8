package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/JaimeStill/syllascan/internal/documents"
	"github.com/JaimeStill/syllascan/internal/events"
	"github.com/JaimeStill/syllascan/internal/prompts"
	"github.com/JaimeStill/syllascan/pkg/formatting"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Extractor obtains candidate events from a normalized image.
type Extractor interface {
	Extract(ctx context.Context, img *documents.Image, credential string) ([]events.Candidate, error)
}

// AgentExtractor extracts events with a vision-capable model.
type AgentExtractor struct {
	agent    gaconfig.AgentConfig
	newModel ModelFactory
	logger   *slog.Logger
}

// NewExtractor creates an AgentExtractor. A nil factory uses go-agents.
func NewExtractor(agent gaconfig.AgentConfig, newModel ModelFactory, logger *slog.Logger) *AgentExtractor {
	if newModel == nil {
		newModel = NewAgentModel
	}
	return &AgentExtractor{
		agent:    agent,
		newModel: newModel,
		logger:   logger.With("system", "extractor"),
	}
}

// Extract sends the image to the model and parses candidate events from
// its response. A non-empty credential replaces the configured provider
// token for this call only. Unparseable output yields no candidates.
func (e *AgentExtractor) Extract(ctx context.Context, img *documents.Image, credential string) ([]events.Candidate, error) {
	cfg := WithCredential(e.agent, credential)
	if !Configured(cfg) {
		return nil, ErrNotConfigured
	}

	prompt, err := prompts.Compose(prompts.StageExtract)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	model, err := e.newModel(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrExtractionFailed, err)
	}

	content, err := model.Vision(ctx, prompt, []string{img.DataURI()})
	if err != nil {
		return nil, ClassifyProviderError(err)
	}

	candidates, err := ParseCandidates(content)
	if err != nil {
		e.logger.WarnContext(ctx, "unparseable model response", "content", content)
		return nil, nil
	}

	e.logger.InfoContext(ctx, "events extracted", "candidates", len(candidates))
	return candidates, nil
}

// ParseCandidates decodes model output into candidate events. The content
// is tried as-is, then as the outermost array of objects, then with
// markdown fences removed. Empty content yields no candidates.
func ParseCandidates(content string) ([]events.Candidate, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	return formatting.ParseFirst[[]events.Candidate](
		content,
		formatting.Direct,
		formatting.ArraySubstring,
		formatting.StripFences,
	)
}

// statusPattern finds a status code written as "status 429",
// "status code: 401", "code=400" or "HTTP/1.1 401".
var statusPattern = regexp.MustCompile(`(?i)\b(?:status(?:\s+code)?|code|http/\d(?:\.\d)?)\s*[:=]?\s*(\d{3})\b`)

type statusCoder interface {
	StatusCode() int
}

// ClassifyProviderError maps a model provider failure onto the extraction
// error taxonomy using its status code when exposed, else its message.
func ClassifyProviderError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	code := 0
	var sc statusCoder
	if errors.As(err, &sc) {
		code = sc.StatusCode()
	} else if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ = strconv.Atoi(m[1])
	}

	msg := strings.ToLower(err.Error())
	switch {
	case code == http.StatusTooManyRequests || strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case code == http.StatusUnauthorized ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "incorrect api key"):
		return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	default:
		return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
}
