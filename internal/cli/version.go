package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the atlasman version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atlasman %s\n", rootCmd.Version)
	},
}
