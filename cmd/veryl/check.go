package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"veryl/internal/diag"
	"veryl/internal/diagfmt"
	"veryl/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Analyze Veryl sources and report diagnostics",
		Long: `Check runs the three analysis passes over the project found from --dir
(or the current directory). Explicit files bypass Veryl.toml discovery.`,
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("dir", "", "project directory (default: current directory)")
	cmd.Flags().String("project", "", "project namespace override")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}
	st := stateOf(cmd)

	var res *driver.Result
	if format == "pretty" && shouldUseTUI(mode) {
		res, err = runCheckWithUI(cmd.Context(), req)
	} else {
		res, err = driver.Check(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if err := printDiagnostics(cmd, res, format); err != nil {
		return err
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(cmd.ErrOrStderr(), st.timer.Summary())
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// buildRequest maps flags shared by check and dump onto a driver request.
func buildRequest(cmd *cobra.Command, args []string) (driver.Request, error) {
	st := stateOf(cmd)
	req := driver.Request{Files: args, Logger: st.logger, Timer: st.timer}

	var err error
	if req.Dir, err = cmd.Flags().GetString("dir"); err != nil {
		return req, fmt.Errorf("failed to get dir flag: %w", err)
	}
	if req.Project, err = cmd.Flags().GetString("project"); err != nil {
		return req, fmt.Errorf("failed to get project flag: %w", err)
	}
	if req.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return req, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if req.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return req, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if req.Dir != "" {
		info, statErr := os.Stat(req.Dir)
		if statErr != nil {
			return req, fmt.Errorf("failed to access %q: %w", req.Dir, statErr)
		}
		if !info.IsDir() {
			return req, fmt.Errorf("%q is not a directory", req.Dir)
		}
		if req.Dir, err = filepath.Abs(req.Dir); err != nil {
			return req, err
		}
	}
	return req, nil
}

func printDiagnostics(cmd *cobra.Command, res *driver.Result, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "short":
		return diagfmt.Short(out, res.Bag, res.FileSet, true)
	}

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     colored,
		Context:   1,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), summaryLine(res))
	}
	return nil
}

func summaryLine(res *driver.Result) string {
	var errs, warns int
	for _, d := range res.Bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		} else {
			warns++
		}
	}
	skipped := 0
	for _, f := range res.Files {
		if f.Skipped {
			skipped++
		}
	}
	line := fmt.Sprintf("checked %d files: %d errors, %d other diagnostics", len(res.Files), errs, warns)
	if skipped > 0 {
		line += fmt.Sprintf(" (%d skipped on syntax errors)", skipped)
	}
	return line
}
