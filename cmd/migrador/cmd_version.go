/*
Copyright © 2024 Clevesson Mendonça
*/
package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Errorf("cmd_version: could not read build info")
		}

		version := info.Main.Version
		if version == "" || version == "(devel)" {
			version = "devel"
		}
		for _, kv := range info.Settings {
			if kv.Key == "vcs.revision" && len(kv.Value) >= 8 {
				version += fmt.Sprintf(" (rev %s)", kv.Value[:8])
			}
		}

		fmt.Printf("migrador version %s\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
