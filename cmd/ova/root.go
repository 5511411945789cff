package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ova",
	Short: "Roll dice and run OVA combat encounters from the terminal",
	Long: `ova resolves OVA rolls: dice pools, attacks against defenses,
counters, spells, drama dice and the effects they leave behind.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
