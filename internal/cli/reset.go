package cli

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <branch-name-or-id>",
	Short: "Reset a branch to its parent",
	Long:  "Re-points an existing branch at the current state of its parent branch. Pass --parent to reset against a different parent.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")
		return executeReset(args[0], parent)
	},
}

func init() {
	resetCmd.Flags().String("parent", "", "Parent branch name or ID to reset against")
}

func executeReset(ref, parent string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	client := newClient(cfg, logger)

	return client.ResetBranch(cfg.ProjectID, ref, parent)
}
