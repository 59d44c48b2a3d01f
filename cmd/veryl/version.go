package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"veryl/internal/version"
)

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show veryl version information",
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("hash", false, "print only the git commit hash")
	cmd.Flags().Bool("date", false, "print only the build date")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showHash, err := cmd.Flags().GetBool("hash")
	if err != nil {
		return fmt.Errorf("failed to get hash flag: %w", err)
	}
	showDate, err := cmd.Flags().GetBool("date")
	if err != nil {
		return fmt.Errorf("failed to get date flag: %w", err)
	}
	out := cmd.OutOrStdout()

	switch {
	case showHash:
		fmt.Fprintln(out, orUnknown(version.GitCommit))
		return nil
	case showDate:
		fmt.Fprintln(out, orUnknown(version.BuildDate))
		return nil
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(versionInfo{
			Version:   version.Version,
			GitCommit: version.GitCommit,
			BuildDate: version.BuildDate,
		})
	case "pretty":
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, version.Banner(colored))
		return nil
	}
	return fmt.Errorf("unknown format: %s", format)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
