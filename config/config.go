// Package config loads process configuration from the environment. Ports,
// peer URLs and timeouts are deployment concerns supplied at startup; none of
// the orchestration logic reads the environment directly.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config aggregates all process configuration. A coordinator process reads
// App + Coordinator; an agent process reads App + Agent.
type Config struct {
	App         AppConfig
	Coordinator CoordinatorConfig
	Agent       AgentConfig
}

// AppConfig holds settings shared by every process.
type AppConfig struct {
	Name      string `envconfig:"GRID_APP_NAME" default:"agentgrid"`
	LogLevel  string `envconfig:"GRID_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"GRID_LOG_FORMAT" default:"text"`
}

// CoordinatorConfig holds the coordinator's listen address and dispatch
// timeout.
type CoordinatorConfig struct {
	Host        string        `envconfig:"GRID_COORDINATOR_HOST" default:"0.0.0.0"`
	Port        int           `envconfig:"GRID_COORDINATOR_PORT" default:"8080"`
	CallTimeout time.Duration `envconfig:"GRID_CALL_TIMEOUT" default:"5s"`
}

// Addr returns the listen address.
func (c CoordinatorConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AgentConfig holds an agent process's identity, listen address, advertised
// location and peer wiring.
type AgentConfig struct {
	Host string `envconfig:"AGENT_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"AGENT_PORT" default:"8081"`
	// URL is the location advertised on registration. Defaults to
	// http://localhost:<port> when unset.
	URL            string `envconfig:"AGENT_URL"`
	CoordinatorURL string `envconfig:"COORDINATOR_URL" default:"http://localhost:8080"`
	// PeerURL is the fixed downstream location used for direct
	// agent-to-agent calls (the report generator's sanitizer peer).
	PeerURL       string        `envconfig:"AGENT_PEER_URL"`
	RegisterDelay time.Duration `envconfig:"AGENT_REGISTER_DELAY" default:"2s"`
	CallTimeout   time.Duration `envconfig:"AGENT_CALL_TIMEOUT" default:"5s"`
}

// Addr returns the listen address.
func (c AgentConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AdvertisedURL returns the location other processes should use to reach
// this agent.
func (c AgentConfig) AdvertisedURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// Load reads an optional .env file, then populates Config from the
// environment.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}
