// Package main provides the entry point for the ProfileScan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ProfileScan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profilescan",
		Short: "Scam pattern analyzer for social media profiles",
		Long: `ProfileScan evaluates social media profile records against known scam
and manipulation patterns, producing a risk score and a privacy-tiered report.

Profile records are JSON or YAML files collected elsewhere; ProfileScan never
contacts any platform. Reports default to the anonymized discovery mode.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
