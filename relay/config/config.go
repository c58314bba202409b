package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Bedrock agent settings.
	Region       string `yaml:"region"`
	AgentID      string `yaml:"agent_id"`
	AgentAliasID string `yaml:"agent_alias_id"`

	// Token verification settings. IssuerURL is the trusted issuer
	// (e.g. a Cognito user pool URL); Audience is the expected client id.
	IssuerURL    string        `yaml:"issuer_url"`
	Audience     string        `yaml:"audience"`
	JWKSCacheTTL time.Duration `yaml:"jwks_cache_ttl"`

	AllowedOrigin string `yaml:"allowed_origin"`

	// Groups permitted to call POST /api/customers/search.
	CustomerSearchGroups []string `yaml:"customer_search_groups"`
}

// LoadConfig reads an optional YAML config file (RELAY_CONFIG, default
// relay.yaml) and overlays environment variables on top. A .env file is
// loaded first if present.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 "3001",
		JWKSCacheTTL:         5 * time.Minute,
		AllowedOrigin:        "http://localhost:5173",
		CustomerSearchGroups: []string{"admin", "analyst"},
	}

	path := getEnv("RELAY_CONFIG", "relay.yaml")
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &cfg)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Region = getEnv("AWS_REGION", cfg.Region)
	cfg.AgentID = getEnv("BEDROCK_AGENT_ID", cfg.AgentID)
	cfg.AgentAliasID = getEnv("BEDROCK_AGENT_ALIAS_ID", cfg.AgentAliasID)
	cfg.IssuerURL = getEnv("ISSUER_URL", cfg.IssuerURL)
	cfg.Audience = getEnv("CLIENT_ID", cfg.Audience)
	cfg.AllowedOrigin = getEnv("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	if groups := getEnv("CUSTOMER_SEARCH_GROUPS", ""); groups != "" {
		cfg.CustomerSearchGroups = splitList(groups)
	}
	if ttl := getEnv("JWKS_CACHE_TTL", ""); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.JWKSCacheTTL = d
		}
	}

	return cfg
}

// AuthEnabled reports whether token verification can be configured at all.
func (c Config) AuthEnabled() bool {
	return c.IssuerURL != "" && c.Audience != ""
}

// AgentConfigured reports whether the invoke-agent settings are complete.
func (c Config) AgentConfigured() bool {
	return c.Region != "" && c.AgentID != "" && c.AgentAliasID != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
