package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"saebridge/config"
)

var (
	schemaDir  string
	schemaDown bool
)

var schemaCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply target store schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+schemaDir, "mysql://"+config.TargetDSN())
		if err != nil {
			fmt.Printf("Migrator setup failed: %v\n", err)
			return
		}
		defer m.Close()

		if schemaDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Schema already up to date.")
			return
		}
		if err != nil {
			fmt.Printf("Schema migration failed: %v\n", err)
			return
		}
		fmt.Println("Schema migration applied.")
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaDir, "dir", "migrations", "Directory with SQL migration files")
	schemaCmd.Flags().BoolVar(&schemaDown, "down", false, "Roll all migrations back instead of applying them")
	rootCmd.AddCommand(schemaCmd)
}
