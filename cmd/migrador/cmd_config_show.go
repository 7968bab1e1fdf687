/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Run: func(cmd *cobra.Command, args []string) {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config file: %s\n", ConfigActual)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Println()
		fmt.Printf("  Parsed YAML:\n%#v\n", ParsedConfig)
		fmt.Println()
		fmt.Printf("  WordPressAPIURL: %s\n", WordPressAPIURL)
		fmt.Printf("  LiferayAPIBase: %s\n", LiferayAPIBase)
		fmt.Printf("  LiferaySiteID: %s\n", LiferaySiteID)
		fmt.Printf("  LiferayUsername: %s\n", LiferayUsername)
		fmt.Printf("  LiferayPasswordCmd: %v\n", LiferayPasswordCmd)
		fmt.Printf("  ContentStructureID: %d\n", ContentStructureID)
		fmt.Printf("  SourceHost: %s\n", SourceHost)
		fmt.Printf("  UploadPrefixes: %v\n", UploadPrefixes)
		fmt.Printf("  TempFolder: %s\n", TempFolder)
		fmt.Printf("  CategoryMappingFile: %s\n", CategoryMappingFile)
		fmt.Printf("  URLMappingFile: %s\n", URLMappingFile)
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
