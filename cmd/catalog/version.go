package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of catalog (overridden by ldflags at build time)
	Version = "0.1.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commit := resolveCommitHash()
			if a.jsonOut {
				result := map[string]string{"version": Version, "build": Build}
				if commit != "" {
					result["commit"] = commit
				}
				return outputJSON(cmd.OutOrStdout(), result)
			}
			if commit != "" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "catalog version %s (%s: %s)\n", Version, Build, shortCommit(commit))
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "catalog version %s (%s)\n", Version, Build)
			return err
		},
	}
}

func resolveCommitHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
