/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var migrateImagesUsage = strings.TrimSpace(`
Walk every mapped category's posts, pull down the images they embed and re-upload them into
Documents and Media, one folder per category with a subfolder per post.  Each migrated image is
recorded in the URL mapping file so the content stage can rewrite article bodies.
`)

var migrateImagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Migrate post images into Documents and Media",
	Long:  migrateImagesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newMigrationEnv()
		if err != nil {
			return err
		}
		defer env.close()

		result, err := env.imageMigrator().Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("cmd: image stage failed: %w", err)
		}

		fmt.Printf("images: %d posts seen, %d with images, %d uploaded, %d reused, %d failed\n",
			result.PostsSeen, result.PostsWithImages, result.ImagesUploaded, result.ImagesReused, result.ImagesFailed)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateImagesCmd)
}
