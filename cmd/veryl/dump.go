package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"veryl/internal/diagfmt"
	"veryl/internal/driver"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [files...]",
		Short: "Analyze sources and print analyzer tables",
		Long: `Dump runs the analysis and prints the selected tables. Without any
table flag every table is printed.`,
		RunE: runDump,
	}
	cmd.Flags().Bool("symbol-table", false, "print the symbol table")
	cmd.Flags().Bool("assign-list", false, "print the assignment list")
	cmd.Flags().Bool("namespace-table", false, "print the namespace table")
	cmd.Flags().Bool("type-dag", false, "print the type dependency graph")
	cmd.Flags().String("format", "text", "output format (text|json|yaml|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("dir", "", "project directory (default: current directory)")
	cmd.Flags().String("project", "", "project namespace override")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts := driver.DumpOptions{}
	if opts.Format, err = driver.ParseDumpFormat(formatStr); err != nil {
		return err
	}
	for name, dst := range map[string]*bool{
		"symbol-table":    &opts.SymbolTable,
		"assign-list":     &opts.AssignList,
		"namespace-table": &opts.NamespaceTable,
		"type-dag":        &opts.TypeDag,
	} {
		if *dst, err = cmd.Flags().GetBool(name); err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if !opts.SymbolTable && !opts.AssignList && !opts.NamespaceTable && !opts.TypeDag {
		opts.SymbolTable, opts.AssignList, opts.NamespaceTable, opts.TypeDag = true, true, true, true
	}

	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}
	res, err := driver.Check(cmd.Context(), req)
	if err != nil {
		return err
	}
	if err := driver.WriteDump(cmd.OutOrStdout(), res, opts); err != nil {
		return err
	}
	// таблицы печатаются даже при ошибках, диагностики идут в stderr
	if err := diagfmt.Short(cmd.ErrOrStderr(), res.Bag, res.FileSet, true); err != nil {
		return err
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}
