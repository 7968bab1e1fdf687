/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var migrateCategoriesUsage = strings.TrimSpace(`
Mirror the WordPress category tree into the Liferay vocabulary and write the ID mapping file the
other stages read.  Safe to re-run; existing categories are matched by name, not duplicated.
`)

var migrateCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Migrate categories into the taxonomy vocabulary",
	Long:  migrateCategoriesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newMigrationEnv()
		if err != nil {
			return err
		}
		defer env.close()

		result, err := env.categoryMapper().Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("cmd: category stage failed: %w", err)
		}

		fmt.Printf("categories: %d fetched, %d matched, %d created, %d skipped\n",
			result.Fetched, result.Matched, result.Created, result.Skipped)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateCategoriesCmd)
}
