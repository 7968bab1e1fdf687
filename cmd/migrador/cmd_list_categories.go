/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clevesson-mendonca-sea/migrador/wordpress"
)

var listCategoriesUsage = strings.TrimSpace(`
If you want to find out what categories the WordPress site has before migrating, use this command.
`)

var listCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print list of WordPress categories",
	Long:  listCategoriesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if WordPressAPIURL == "" {
			return fmt.Errorf("list: no WordPress API URL set.  Use --wordpress-api-url or set it in your config file")
		}

		api, err := wordpress.NewAPI(WordPressAPIURL)
		if err != nil {
			return fmt.Errorf("list: couldn't instantiate WordPress API: %w", err)
		}

		log.Printf("Listing WordPress categories on %s...\n", WordPressAPIURL)
		categories, err := api.ListAllCategories(ctx, wordpress.Abort)
		if err != nil {
			return fmt.Errorf("list: couldn't list WordPress categories: %w", err)
		}

		log.Printf("Found %d categories.\n", len(categories))

		sort.Slice(categories, func(i, j int) bool {
			return categories[i].Name < categories[j].Name
		})

		fmt.Printf("categories:\n")
		for _, category := range categories {
			fmt.Printf("  - %d: %s (%d posts)\n", category.ID, category.Name, category.Count)
		}

		return nil
	},
}

func init() {
	listCmd.AddCommand(listCategoriesCmd)
}
