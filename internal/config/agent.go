package config

import (
	"fmt"
	"net/url"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "SYLLASCAN_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "SYLLASCAN_AGENT_BASE_URL"
	EnvAgentToken        = "SYLLASCAN_AGENT_TOKEN"
	EnvAgentDeployment   = "SYLLASCAN_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "SYLLASCAN_AGENT_API_VERSION"
	EnvAgentAuthType     = "SYLLASCAN_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "SYLLASCAN_AGENT_MODEL_NAME"
)

// FinalizeAgent finalizes a go-agents AgentConfig: defaults from
// DefaultAgentConfig, environment variable overrides, then validation.
// A missing token is not an error; extraction reports it per request.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider != nil && c.Provider.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Provider.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
