package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"saebridge/config"
	"saebridge/service/legacy"
	migrateService "saebridge/service/migrate"
)

// newRun opens both ends and builds a run context. Every migration command
// goes through here so flags and env knobs behave identically everywhere.
func newRun() (*migrateService.Run, error) {
	params, err := config.LoadRunParams()
	if err != nil {
		return nil, err
	}
	legacyDB, err := config.NewLegacyDB()
	if err != nil {
		return nil, fmt.Errorf("legacy connection failed: %w", err)
	}
	target, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("target connection failed: %w", err)
	}
	return migrateService.NewRun(params, legacy.NewSQLSource(legacyDB), target, config.GetLogger()), nil
}

func printResult(res *migrateService.Result) {
	for _, w := range res.Warnings {
		fmt.Printf("  [warn] %s\n", w)
	}
	fmt.Print(res.Summary())
}

func entityCmd(use, short string, fn func(*migrateService.Run) (*migrateService.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			run, err := newRun()
			if err != nil {
				fmt.Printf("Setup failed: %v\n", err)
				return
			}
			res, err := fn(run)
			if err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				return
			}
			printResult(res)
		},
	}
}

var migrateAllCmd = &cobra.Command{
	Use:   "migrate:all",
	Short: "Run the full migration pipeline in dependency order",
	Run: func(cmd *cobra.Command, args []string) {
		run, err := newRun()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		results, err := migrateService.RunFull(run)
		fmt.Println("=== Migration Report ===")
		for _, res := range results {
			printResult(res)
		}
		if err != nil {
			fmt.Printf("Pipeline aborted: %v\n", err)
		}
	},
}

var stockCmd = &cobra.Command{
	Use:   "migrate:stock",
	Short: "Distribute product stock across warehouse partitions",
	Run: func(cmd *cobra.Command, args []string) {
		run, err := newRun()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		res, err := migrateService.MigrateWarehouseStock(run)
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		printResult(&res.Result)
		for wh, n := range res.DroppedWarehouses {
			fmt.Printf("  [warn] warehouse %s unmapped: %d detail rows dropped\n", wh, n)
		}
		if res.AggregateMismatch > 0 {
			fmt.Printf("  [warn] %d products disagree with the legacy stock aggregate\n", res.AggregateMismatch)
		}
	},
}

func init() {
	rootCmd.AddCommand(
		entityCmd("migrate:customers", "Migrate customer records", migrateService.MigrateCustomers),
		entityCmd("migrate:suppliers", "Migrate supplier records", migrateService.MigrateSuppliers),
		entityCmd("migrate:products", "Migrate the product catalog", migrateService.MigrateProducts),
		entityCmd("migrate:invoices", "Migrate sales invoices and line items", migrateService.MigrateInvoices),
		entityCmd("migrate:purchases", "Migrate purchase documents and line items", migrateService.MigratePurchases),
		entityCmd("migrate:movements", "Migrate the inventory kardex", migrateService.MigrateMovements),
		entityCmd("migrate:receivables", "Rebuild accounts receivable from the ledger", migrateService.MigrateReceivables),
		stockCmd,
		migrateAllCmd,
	)
}
