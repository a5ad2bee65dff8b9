package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultGraphQLEndpoint es el endpoint publico de la API de Graphlit.
const DefaultGraphQLEndpoint = "https://data-scus.graphlit.io/api/v1/graphql"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	GraphQLURL     string        `env:"GRAPHLIT_API_URL" envDefault:"https://data-scus.graphlit.io/api/v1/graphql"`
	HTTPTimeout    time.Duration `env:"GRAPHLIT_HTTP_TIMEOUT" envDefault:"0s"`
	JWTSecret      string        `env:"GRAPHLIT_JWT_SECRET"`
	EnvironmentID  string        `env:"GRAPHLIT_ENVIRONMENT_ID"`
	OrganizationID string        `env:"GRAPHLIT_ORGANIZATION_ID"`
	LogDevelopment bool          `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.GraphQLURL) == "" {
		cfg.GraphQLURL = DefaultGraphQLEndpoint
	}
	return &cfg, nil
}

// HasCredentialInputs indica si las tres credenciales vienen del entorno.
func (c *Config) HasCredentialInputs() bool {
	return strings.TrimSpace(c.JWTSecret) != "" &&
		strings.TrimSpace(c.EnvironmentID) != "" &&
		strings.TrimSpace(c.OrganizationID) != ""
}
