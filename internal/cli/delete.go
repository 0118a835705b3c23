package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/neon"
	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [branch-name-or-id]",
	Short: "Delete a database branch",
	Long:  "Deletes a branch by name or ID. Deleting a branch that is already gone counts as success. Run without arguments on a terminal to pick from branches created on this machine.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) > 0 {
			ref = args[0]
		}
		return executeDelete(ref)
	},
}

func executeDelete(ref string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	client := newClient(cfg, logger)

	branchID := ref
	switch {
	case ref == "":
		branchID, err = pickRecordedBranch(cfg.ProjectID)
		if err != nil {
			return err
		}
		if branchID == "" {
			return nil // cancelled
		}
	case !strings.HasPrefix(ref, neon.BranchIDPrefix):
		branch, err := client.FindBranch(cfg.ProjectID, ref)
		if err != nil {
			return err
		}
		if branch == nil {
			return fmt.Errorf("%w: %q", neon.ErrBranchNotFound, ref)
		}
		branchID = branch.ID
	}

	if err := client.DeleteBranch(cfg.ProjectID, branchID); err != nil {
		return err
	}

	if db, err := openStore(); err == nil {
		if err := db.ForgetBranch(branchID); err != nil {
			logger.Warn("dropping local branch record", "error", err)
		}
		db.Close()
	}

	logger.Info("branch deleted", "id", branchID)
	return nil
}

// pickRecordedBranch falls back to the CI branch name when stdin is not
// a terminal, and otherwise offers an interactive choice of the
// branches recorded on this machine.
func pickRecordedBranch(projectID string) (string, error) {
	db, err := openStore()
	if err != nil {
		return "", err
	}
	defer db.Close()

	records, err := db.ListBranches(projectID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("no branch specified and none recorded for project %s", projectID)
	}

	if !stdinIsTerminal() {
		return records[0].ID, nil
	}

	chosen, err := ui.SelectBranch(records)
	if err != nil {
		return "", err
	}
	if chosen == nil {
		return "", nil
	}
	return chosen.ID, nil
}
