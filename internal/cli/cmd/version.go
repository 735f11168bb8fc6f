package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themesync/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "themesync %s\n", orDev(buildInfo.Version))
		if buildInfo.Commit != "" {
			fmt.Fprintf(out, "commit:  %s\n", buildInfo.Commit)
		}
		if buildInfo.BuildDate != "" {
			fmt.Fprintf(out, "built:   %s\n", buildInfo.BuildDate)
		}
		if buildInfo.GoVersion != "" {
			fmt.Fprintf(out, "go:      %s\n", buildInfo.GoVersion)
		}
		fmt.Fprintln(out, build.RepoURL())
	},
}

func orDev(v string) string {
	if v == "" {
		return "dev"
	}
	return v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
