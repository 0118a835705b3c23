package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Config is the full set of inputs for one invocation, populated once
// from the environment and validated at the boundary. Components never
// look up environment variables themselves.
type Config struct {
	APIKey    string
	ProjectID string

	BranchName   string
	ParentBranch string
	Role         string
	Database     string
	Password     string // caller-supplied override; empty means reveal from the API
	TTLSeconds   int
	SchemaOnly   bool

	FetchAuthURL    bool
	FetchDataAPIURL bool

	APIRetries int

	// CI ambient identifiers, used for fallback branch naming.
	WorkflowID string
	NodeIndex  string

	LogLevel string
}

const (
	DefaultRole     = "neondb_owner"
	DefaultDatabase = "neondb"
)

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()

	envs := map[string]string{
		"api_key":            "NEON_API_KEY",
		"project_id":         "NEON_PROJECT_ID",
		"branch_name":        "NEON_BRANCH_NAME",
		"parent_branch":      "NEON_PARENT_BRANCH",
		"role":               "NEON_ROLE",
		"database":           "NEON_DATABASE",
		"password":           "NEON_PASSWORD",
		"ttl_seconds":        "NEON_BRANCH_TTL_SECONDS",
		"schema_only":        "NEON_SCHEMA_ONLY",
		"fetch_auth_url":     "NEON_FETCH_AUTH_URL",
		"fetch_data_api_url": "NEON_FETCH_DATA_API_URL",
		"api_retries":        "NEON_API_RETRIES",
		"workflow_id":        "CIRCLE_WORKFLOW_ID",
		"node_index":         "CIRCLE_NODE_INDEX",
		"log_level":          "NEON_LOG_LEVEL",
	}
	for key, env := range envs {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	v.SetDefault("role", DefaultRole)
	v.SetDefault("database", DefaultDatabase)
	v.SetDefault("log_level", "info")

	cfg := &Config{
		APIKey:          v.GetString("api_key"),
		ProjectID:       v.GetString("project_id"),
		BranchName:      v.GetString("branch_name"),
		ParentBranch:    v.GetString("parent_branch"),
		Role:            v.GetString("role"),
		Database:        v.GetString("database"),
		Password:        v.GetString("password"),
		TTLSeconds:      v.GetInt("ttl_seconds"),
		SchemaOnly:      Truthy(v.GetString("schema_only")),
		FetchAuthURL:    Truthy(v.GetString("fetch_auth_url")),
		FetchDataAPIURL: Truthy(v.GetString("fetch_data_api_url")),
		APIRetries:      v.GetInt("api_retries"),
		WorkflowID:      v.GetString("workflow_id"),
		NodeIndex:       v.GetString("node_index"),
		LogLevel:        v.GetString("log_level"),
	}
	return cfg, nil
}

// Validate checks the required fields once, at the boundary.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required.Error("NEON_API_KEY is required")),
		validation.Field(&c.ProjectID, validation.Required.Error("NEON_PROJECT_ID is required")),
		validation.Field(&c.TTLSeconds, validation.Min(0).Error("NEON_BRANCH_TTL_SECONDS must be >= 0")),
		validation.Field(&c.APIRetries, validation.Min(0).Error("NEON_API_RETRIES must be >= 0")),
	)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Truthy interprets the usual affirmative spellings; anything else,
// including the empty string, is false.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
