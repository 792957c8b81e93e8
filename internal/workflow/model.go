package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents/pkg/agent"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Model is the slice of a language model agent the service calls.
type Model interface {
	Vision(ctx context.Context, prompt string, images []string) (string, error)
	Chat(ctx context.Context, prompt string) (string, error)
}

// ModelFactory creates a Model for an agent configuration.
type ModelFactory func(cfg *gaconfig.AgentConfig) (Model, error)

type agentModel struct {
	agent agent.Agent
}

// NewAgentModel creates a Model backed by a go-agents agent.
func NewAgentModel(cfg *gaconfig.AgentConfig) (Model, error) {
	a, err := agent.New(cfg)
	if err != nil {
		return nil, err
	}
	return &agentModel{agent: a}, nil
}

func (m *agentModel) Vision(ctx context.Context, prompt string, images []string) (string, error) {
	resp, err := m.agent.Vision(ctx, prompt, images)
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}

func (m *agentModel) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := m.agent.Chat(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}

// WithCredential returns a copy of cfg whose provider token is replaced by
// credential. The original configuration is never mutated. An empty
// credential returns an unmodified copy.
func WithCredential(cfg gaconfig.AgentConfig, credential string) gaconfig.AgentConfig {
	out := cfg
	if cfg.Provider == nil {
		return out
	}

	provider := *cfg.Provider
	provider.Options = make(map[string]any, len(cfg.Provider.Options)+1)
	for k, v := range cfg.Provider.Options {
		provider.Options[k] = v
	}
	if credential != "" {
		provider.Options["token"] = credential
	}
	out.Provider = &provider
	return out
}

// Configured reports whether cfg can reach a provider. Local ollama
// providers need no token; every other provider does.
func Configured(cfg gaconfig.AgentConfig) bool {
	if cfg.Provider == nil || cfg.Provider.Name == "" || cfg.Model == nil {
		return false
	}
	if cfg.Provider.Name == "ollama" {
		return true
	}
	token, _ := cfg.Provider.Options["token"].(string)
	return token != ""
}
