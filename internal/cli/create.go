package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/neon"
	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/output"
	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/store"
)

var createCmd = &cobra.Command{
	Use:   "create [branch-name]",
	Short: "Create or reuse a database branch",
	Long:  "Creates a branch from the parent database (or reuses an existing branch with the same name), derives connection credentials, and persists them for later pipeline steps.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return executeCreate(name, cmd)
	},
}

func init() {
	createCmd.Flags().String("parent", "", "Parent branch name or ID")
	createCmd.Flags().Int("ttl", 0, "Branch time-to-live in seconds (0 disables expiry)")
	createCmd.Flags().Bool("schema-only", false, "Initialize the branch with schema but no data")
	createCmd.Flags().Bool("check", false, "Verify the derived connection string with a ping")
}

func executeCreate(nameArg string, cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if nameArg != "" {
		cfg.BranchName = nameArg
	}
	if parent, _ := cmd.Flags().GetString("parent"); parent != "" {
		cfg.ParentBranch = parent
	}
	if cmd.Flags().Changed("ttl") {
		cfg.TTLSeconds, _ = cmd.Flags().GetInt("ttl")
	}
	if schemaOnly, _ := cmd.Flags().GetBool("schema-only"); schemaOnly {
		cfg.SchemaOnly = true
	}

	logger := newLogger(cfg.LogLevel)
	client := newClient(cfg, logger)

	name := neon.BranchName(cfg.BranchName, cfg.WorkflowID, cfg.NodeIndex)

	branch, err := client.ResolveBranch(cfg.ProjectID, neon.ResolveOptions{
		Name:       name,
		Parent:     cfg.ParentBranch,
		TTLSeconds: cfg.TTLSeconds,
		SchemaOnly: cfg.SchemaOnly,
	})
	if err != nil {
		return err
	}

	info, err := client.DeriveConnection(cfg.ProjectID, branch.ID, cfg.Role, cfg.Database, cfg.Password)
	if err != nil {
		return err
	}

	snapshot := output.NewSnapshot()
	snapshot.Set("DATABASE_URL", info.DirectURL)
	snapshot.Set("DATABASE_URL_POOLED", info.PooledURL)
	snapshot.Set("NEON_HOST", info.Host)
	snapshot.Set("NEON_HOST_POOLED", info.PooledHost)
	snapshot.Set("NEON_USER", info.Role)
	snapshot.Set("NEON_PASSWORD", info.Password)
	snapshot.Set("NEON_DATABASE", info.Database)
	snapshot.Set("NEON_BRANCH_ID", info.BranchID)

	if cfg.FetchAuthURL {
		if url, _ := client.FetchFeatureURL(neon.AuthGatewayFeature(cfg.ProjectID)); url != "" {
			snapshot.Set("NEON_AUTH_URL", url)
		}
	}
	if cfg.FetchDataAPIURL {
		if url, _ := client.FetchFeatureURL(neon.DataAPIFeature(cfg.ProjectID, branch.ID, cfg.Database)); url != "" {
			snapshot.Set("NEON_DATA_API_URL", url)
		}
	}

	if envFile := os.Getenv("BASH_ENV"); envFile != "" {
		if err := snapshot.Persist(envFile); err != nil {
			return fmt.Errorf("persisting environment: %w", err)
		}
		logger.Info("connection details persisted", "branch", name, "id", branch.ID)
	} else {
		snapshot.Print(os.Stdout)
	}

	if db, err := openStore(); err == nil {
		if err := db.RecordBranch(store.BranchRecord{
			ID:        branch.ID,
			Name:      branch.Name,
			ProjectID: cfg.ProjectID,
			Host:      info.Host,
		}); err != nil {
			logger.Warn("recording branch locally", "error", err)
		}
		db.Close()
	} else {
		logger.Warn("opening local state", "error", err)
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		if err := verifyConnection(cmd.Context(), info.DirectURL); err != nil {
			return fmt.Errorf("connection check failed: %w", err)
		}
		logger.Info("connection check passed", "host", info.Host)
	}

	return nil
}
