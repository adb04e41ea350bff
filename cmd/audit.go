package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	migrateService "saebridge/service/migrate"
)

var auditCmd = &cobra.Command{
	Use:   "audit:run",
	Short: "Compare legacy and target counts and sums",
	Run: func(cmd *cobra.Command, args []string) {
		run, err := newRun()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		report, err := migrateService.RunAudit(run)
		if err != nil {
			fmt.Printf("Audit failed: %v\n", err)
			return
		}

		fmt.Println("=== Audit Report ===")
		for _, c := range report.Results {
			mark := "OK"
			if !c.Match {
				mark = "MISMATCH"
			}
			fmt.Printf("%-26s legacy=%-16s target=%-16s %s\n",
				c.Metric, c.Legacy.String(), c.Target.String(), mark)
		}
		if report.OK() {
			fmt.Println("All metrics match.")
		} else {
			fmt.Printf("%d metric(s) mismatched.\n", len(report.Mismatches()))
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
