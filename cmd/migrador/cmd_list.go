/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Commands to list items",
	Long: `
Commands in this namespace are to help you explore the source WordPress site.
`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
