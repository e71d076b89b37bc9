package llm

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultDeployment = "gpt-4o-mini"

// Config is the provider wiring, resolved once at startup and read-only
// afterwards. A Config without an endpoint is the disabled steady state:
// the adapter then answers every call with agent.ErrProviderDisabled and
// never dials out.
type Config struct {
	Endpoint   string
	APIKey     string
	Deployment string
	Timeout    time.Duration
}

func (c Config) Enabled() bool { return c.Endpoint != "" }

type envConfig struct {
	Endpoint         string `env:"LLM_ENDPOINT"`
	APIKey           string `env:"LLM_API_KEY"`
	Deployment       string `env:"LLM_DEPLOYMENT"`
	TimeoutSeconds   int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"8"`
	ConnectionString string `env:"ConnectionStrings__aceLLM"`
	ConnectionAlias  string `env:"LLM_CONNECTION_STRING"`
	FoundryProject   string `env:"FOUNDRY_PROJECT_NAME" envDefault:"default"`
}

// ResolveConfig builds the provider Config from the environment. The
// orchestration host passes connection details as a single Aspire-style
// connection string; the LLM_* variables override individual fields.
// Missing configuration is not an error, it just disables the provider.
func ResolveConfig() (Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return Config{}, err
	}

	cfg := Config{Timeout: 8 * time.Second}
	if e.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(e.TimeoutSeconds) * time.Second
	}

	if conn := firstNonEmpty(e.ConnectionString, e.ConnectionAlias); conn != "" {
		cfg.Endpoint, cfg.Deployment, cfg.APIKey = parseConnectionString(conn, e.FoundryProject)
	}
	if e.Endpoint != "" {
		cfg.Endpoint = strings.TrimSpace(e.Endpoint)
	}
	if e.APIKey != "" {
		cfg.APIKey = strings.TrimSpace(e.APIKey)
	}
	if e.Deployment != "" {
		cfg.Deployment = strings.TrimSpace(e.Deployment)
	}
	if cfg.Deployment == "" {
		cfg.Deployment = defaultDeployment
	}
	return cfg, nil
}

// parseConnectionString splits "Key=Value;Key=Value". An inference
// endpoint ending in /models is rewritten to the project endpoint form
// <base>/api/projects/<project>; otherwise the plain Endpoint key wins.
func parseConnectionString(s, project string) (endpoint, deployment, apiKey string) {
	parts := map[string]string{}
	for _, part := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		parts[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	if inference := parts["EndpointAIInference"]; inference != "" && strings.Contains(inference, "/models") {
		base := strings.TrimRight(strings.ReplaceAll(inference, "/models", ""), "/")
		if project == "" {
			project = "default"
		}
		endpoint = base + "/api/projects/" + project
	} else {
		endpoint = parts["Endpoint"]
	}

	deployment = parts["DeploymentId"]
	if deployment == "" {
		deployment = parts["Model"]
	}
	apiKey = parts["ApiKey"]
	return
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
