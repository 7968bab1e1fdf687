/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var migrateContentUsage = strings.TrimSpace(`
Recreate the WordPress posts as Liferay structured content.  Image URLs recorded by the image
stage are rewritten before creation; a second pass patches links between articles once every
article's new address is known.
`)

var migrateContentCmd = &cobra.Command{
	Use:   "content",
	Short: "Migrate posts as structured content",
	Long:  migrateContentUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newMigrationEnv()
		if err != nil {
			return err
		}
		defer env.close()

		result, err := env.contentMigrator().Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("cmd: content stage failed: %w", err)
		}

		fmt.Printf("content: %d fetched, %d created, %d failed, %d relinked, %d unchanged, %d relink failures, %d missing\n",
			result.PostsFetched, result.Created, result.CreateFailed,
			result.LinksUpdated, result.LinksUnchanged, result.LinksFailed, result.NotFound)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateContentCmd)
}
