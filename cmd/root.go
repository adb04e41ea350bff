package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "saebridge",
	Short: "Legacy ERP migration and reconciliation toolkit",
	Long:  "saebridge moves catalog, sales and ledger data out of a legacy Aspel-style ERP into the normalized store, and audits the result.",
}

// Execute runs the CLI. Custom packages register extra commands via Register
// before this is called.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
