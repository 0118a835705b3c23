package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}
