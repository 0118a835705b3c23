package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")
		return executeList(local)
	},
}

func init() {
	listCmd.Flags().Bool("local", false, "List branches recorded on this machine instead of querying the API")
}

func executeList(local bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if local {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.ListBranches(cfg.ProjectID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No branches recorded.")
			return nil
		}

		fmt.Printf("%-30s %-25s %-20s\n", "ID", "NAME", "CREATED AT")
		for _, rec := range records {
			fmt.Printf("%-30s %-25s %-20s\n", rec.ID, rec.Name, rec.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	logger := newLogger(cfg.LogLevel)
	client := newClient(cfg, logger)

	branches, err := client.ListBranches(cfg.ProjectID)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		fmt.Println("No branches found.")
		return nil
	}

	fmt.Printf("%-30s %-25s %-30s %-20s\n", "ID", "NAME", "PARENT", "EXPIRES AT")
	for _, branch := range branches {
		fmt.Printf("%-30s %-25s %-30s %-20s\n", branch.ID, branch.Name, branch.ParentID, branch.ExpiresAt)
	}
	return nil
}
