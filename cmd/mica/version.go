package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mica/internal/version"
)

var versionShowFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show mica build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "mica %s\n", v)
		if versionShowFull {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", valueOrUnknown(version.GitCommit))
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", valueOrUnknown(version.BuildDate))
		}
		return nil
	},
}

func valueOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
