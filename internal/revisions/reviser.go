// Package revisions edits a single reviewed event from a natural language
// instruction by asking a chat model which fields changed.
package revisions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/syllascan/internal/events"
	"github.com/JaimeStill/syllascan/internal/prompts"
	"github.com/JaimeStill/syllascan/internal/workflow"
	"github.com/JaimeStill/syllascan/pkg/formatting"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Request is the body of POST /events/revise.
type Request struct {
	Message string        `json:"message"`
	Event   *events.Event `json:"event"`
}

// Response carries the model's reply and the event with its changes applied.
type Response struct {
	Message      string       `json:"message"`
	UpdatedEvent events.Event `json:"updatedEvent"`
}

type reply struct {
	Message string `json:"message"`
	Event   Patch  `json:"event"`
}

// Reviser asks a chat model how an event should change.
type Reviser struct {
	agent    gaconfig.AgentConfig
	newModel workflow.ModelFactory
	logger   *slog.Logger
}

// NewReviser creates a Reviser. A nil factory uses go-agents.
func NewReviser(agent gaconfig.AgentConfig, newModel workflow.ModelFactory, logger *slog.Logger) *Reviser {
	if newModel == nil {
		newModel = workflow.NewAgentModel
	}
	return &Reviser{
		agent:    agent,
		newModel: newModel,
		logger:   logger.With("system", "reviser"),
	}
}

// Revise applies the instruction in req to req.Event. An unparseable reply
// is returned as the message with the event unchanged.
func (rv *Reviser) Revise(ctx context.Context, req Request, credential string) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if req.Event == nil {
		return nil, ErrNoEvent
	}

	cfg := workflow.WithCredential(rv.agent, credential)
	if !workflow.Configured(cfg) {
		return nil, workflow.ErrNotConfigured
	}

	details := prompts.EventDetails{
		Title:       req.Event.Title,
		Description: req.Event.Description,
		StartDate:   req.Event.StartDate,
		EndDate:     req.Event.EndDate,
		Location:    req.Event.Location,
		IsAllDay:    req.Event.IsAllDay,
	}

	prompt, err := prompts.Compose(prompts.StageRevise, details.Describe(), "User request: "+req.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", workflow.ErrExtractionFailed, err)
	}

	model, err := rv.newModel(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", workflow.ErrExtractionFailed, err)
	}

	content, err := model.Chat(ctx, prompt)
	if err != nil {
		return nil, workflow.ClassifyProviderError(err)
	}

	r, err := formatting.ParseFirst[reply](
		content,
		formatting.Direct,
		formatting.FencedBlock,
		formatting.ObjectSubstring,
	)
	if err != nil {
		rv.logger.WarnContext(ctx, "unparseable revision reply", "content", content)
		return &Response{Message: strings.TrimSpace(content), UpdatedEvent: *req.Event}, nil
	}

	updated := *req.Event
	if !r.Event.Empty() {
		updated = Apply(updated, r.Event)
	}

	rv.logger.InfoContext(ctx, "event revised", "id", updated.ID, "changed", !r.Event.Empty())
	return &Response{Message: r.Message, UpdatedEvent: updated}, nil
}
