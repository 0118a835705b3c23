package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	truthy := []string{"true", "TRUE", "True", "1", "yes", "YES", "on", " on ", "\ttrue\n"}
	for _, s := range truthy {
		require.True(t, Truthy(s), "%q should be truthy", s)
	}

	falsy := []string{"", "false", "0", "no", "off", "enabled", "y", "t", "2"}
	for _, s := range falsy {
		require.False(t, Truthy(s), "%q should be falsy", s)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEON_API_KEY", "key-123")
	t.Setenv("NEON_PROJECT_ID", "proj-456")
	t.Setenv("NEON_BRANCH_NAME", "ci-42")
	t.Setenv("NEON_PARENT_BRANCH", "main")
	t.Setenv("NEON_BRANCH_TTL_SECONDS", "3600")
	t.Setenv("NEON_SCHEMA_ONLY", "yes")
	t.Setenv("NEON_FETCH_AUTH_URL", "TRUE")
	t.Setenv("NEON_FETCH_DATA_API_URL", "off")
	t.Setenv("CIRCLE_WORKFLOW_ID", "wf-789")
	t.Setenv("CIRCLE_NODE_INDEX", "1")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "key-123", cfg.APIKey)
	require.Equal(t, "proj-456", cfg.ProjectID)
	require.Equal(t, "ci-42", cfg.BranchName)
	require.Equal(t, "main", cfg.ParentBranch)
	require.Equal(t, 3600, cfg.TTLSeconds)
	require.True(t, cfg.SchemaOnly)
	require.True(t, cfg.FetchAuthURL)
	require.False(t, cfg.FetchDataAPIURL)
	require.Equal(t, "wf-789", cfg.WorkflowID)
	require.Equal(t, "1", cfg.NodeIndex)

	require.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEON_API_KEY", "key")
	t.Setenv("NEON_PROJECT_ID", "proj")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, DefaultRole, cfg.Role)
	require.Equal(t, DefaultDatabase, cfg.Database)
	require.Equal(t, "info", cfg.LogLevel)
	require.Zero(t, cfg.TTLSeconds)
	require.False(t, cfg.SchemaOnly)
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := &Config{ProjectID: "proj"}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "NEON_API_KEY")
}

func TestValidateMissingProjectID(t *testing.T) {
	cfg := &Config{APIKey: "key"}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "NEON_PROJECT_ID")
}

func TestValidateNegativeTTL(t *testing.T) {
	cfg := &Config{APIKey: "key", ProjectID: "proj", TTLSeconds: -1}
	require.Error(t, cfg.Validate())
}
