package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"veryl/internal/version"
)

// errDiagnostics signals that the run completed but reported errors.
var errDiagnostics = errors.New("analysis reported errors")

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "veryl",
		Short:             "Veryl hardware description language analyzer",
		Long:              `veryl checks Veryl sources: symbol resolution, types, clock and reset rules`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRun,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|pass|file|handler)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
	return root
}

// main registers subcommands and persistent flags, then executes the root command.
// Any error, including reported diagnostics, exits with status 1.
// The tracer is closed after the command even when it failed.
func main() {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil {
		finishRun(cmd)
	}
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) (bool, error) {
	flag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch flag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, errors.New("invalid --color value " + flag + " (expected auto|on|off)")
}
