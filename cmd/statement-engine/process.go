// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/statement-engine/internal/ledger"
	"github.com/pdiddy/statement-engine/internal/organize"
	"github.com/pdiddy/statement-engine/internal/reader"
	"github.com/pdiddy/statement-engine/internal/report"
	"github.com/pdiddy/statement-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [input]",
	Short: "Read an input file, organize its records, and write a report",
	Long: `Process runs the full pipeline on one input file: parse it into
records, apply the organize steps, and write the report into the
output directory.

Organize steps run in a fixed order: recipe steps first, then
--filter, --rename, --group-by/--sum, and --sort.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]
	started := time.Now()

	readerCfg := readerConfigFromFlags(cmd)
	reportCfg := reportConfigFromFlags(cmd)

	run := ledger.Run{
		InputPath:   input,
		InputFormat: string(inputFormat(input, readerCfg)),
		StartedAt:   started,
	}

	err := processFile(cmd, input, readerCfg, reportCfg, &run)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = ledger.StatusFailed
		run.Error = err.Error()
	} else {
		run.Status = ledger.StatusOK
	}
	recordRun(cmd, run)

	return err
}

// processFile executes read, organize, and write, filling the run
// record as stages complete.
func processFile(cmd *cobra.Command, input string, readerCfg types.ReaderConfig, reportCfg types.ReportConfig, run *ledger.Run) error {
	steps, err := stepsFromFlags(cmd)
	if err != nil {
		return err
	}

	table, err := reader.Read(input, readerCfg)
	if err != nil {
		return err
	}
	run.RowsRead = table.Len()

	organized, err := organize.Apply(table, steps)
	if err != nil {
		return err
	}

	if organized.Len() == 0 {
		return fmt.Errorf("no records extracted from %s; nothing written", input)
	}

	outFlag, _ := cmd.Flags().GetString("out")
	outPath := report.OutputPath(input, reportCfg, outFlag)
	if err := report.Write(organized, outPath, reportCfg); err != nil {
		return err
	}
	run.RowsWritten = organized.Len()
	run.OutputPath = outPath

	fmt.Fprintf(cmd.OutOrStdout(), "processed %s: %d records read, %d written\n", input, run.RowsRead, run.RowsWritten)
	fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", outPath)
	return nil
}

// recordRun appends the run to the ledger. Recording is best-effort:
// a ledger failure only warns.
func recordRun(cmd *cobra.Command, run ledger.Run) {
	if skip, _ := cmd.Flags().GetBool("no-ledger"); skip {
		return
	}

	store, err := ledger.NewStore(ledgerConfigFromFlags(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ledger unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
	}
}

// inputFormat resolves the format the run will be recorded under.
func inputFormat(input string, cfg types.ReaderConfig) types.Format {
	if cfg.Format != "" {
		return cfg.Format
	}
	if f, err := reader.DetectFormat(input); err == nil {
		return f
	}
	return "unknown"
}

// addReaderFlags registers the input flags shared by process and inspect.
func addReaderFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "input format: text, csv, xlsx, or pdf (default: by extension)")
	cmd.Flags().String("col", "", "CSV column holding statement text")
	cmd.Flags().String("sheet", "", "Excel sheet to read (default: first sheet)")
	cmd.Flags().Bool("keep-all-lines", false, "keep every PDF line, skipping the transaction heuristics")
	cmd.Flags().Bool("no-date-filter", false, "do not require a leading dd/mm/yyyy date on PDF lines")
	cmd.Flags().Int("min-numbers", 2, "minimum statement numbers per PDF line")
	cmd.Flags().StringSlice("contains", nil, "keep only lines containing any of these words (comma-separated)")
	cmd.Flags().String("pdf-backend", "native", "PDF text extraction backend: native or pdftotext")
}

// readerConfigFromFlags starts from the file configuration and lets
// explicitly set flags override it.
func readerConfigFromFlags(cmd *cobra.Command) types.ReaderConfig {
	cfg := fileConfig().Reader
	flags := cmd.Flags()

	if flags.Changed("format") {
		s, _ := flags.GetString("format")
		cfg.Format = types.Format(s)
	}
	if flags.Changed("col") {
		cfg.Column, _ = flags.GetString("col")
	}
	if flags.Changed("sheet") {
		cfg.Sheet, _ = flags.GetString("sheet")
	}
	if flags.Changed("keep-all-lines") {
		cfg.KeepAllLines, _ = flags.GetBool("keep-all-lines")
	}
	if flags.Changed("no-date-filter") {
		noDate, _ := flags.GetBool("no-date-filter")
		cfg.RequireDate = !noDate
	}
	if flags.Changed("min-numbers") {
		cfg.MinNumbers, _ = flags.GetInt("min-numbers")
	}
	if flags.Changed("contains") {
		cfg.Contains, _ = flags.GetStringSlice("contains")
	}
	if flags.Changed("pdf-backend") {
		s, _ := flags.GetString("pdf-backend")
		cfg.PDFBackend = types.PDFBackend(s)
	}
	return cfg
}

func reportConfigFromFlags(cmd *cobra.Command) types.ReportConfig {
	cfg := fileConfig().Report
	flags := cmd.Flags()

	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("report-format") {
		s, _ := flags.GetString("report-format")
		cfg.Format = types.ReportFormat(s)
	}
	if flags.Changed("report-sheet") {
		cfg.SheetName, _ = flags.GetString("report-sheet")
	}
	return cfg
}

func ledgerConfigFromFlags(cmd *cobra.Command) types.LedgerConfig {
	cfg := fileConfig().Ledger
	if cmd.Flags().Changed("ledger-dir") {
		cfg.LedgerDir, _ = cmd.Flags().GetString("ledger-dir")
	}
	return cfg
}

// stepsFromFlags builds the organize chain: recipe steps first, then
// the per-flag steps in documented order.
func stepsFromFlags(cmd *cobra.Command) ([]organize.Step, error) {
	var steps []organize.Step

	if recipe, _ := cmd.Flags().GetString("recipe"); recipe != "" {
		loaded, err := organize.LoadRecipe(recipe)
		if err != nil {
			return nil, err
		}
		steps = append(steps, loaded...)
	}

	filters, _ := cmd.Flags().GetStringArray("filter")
	for _, expr := range filters {
		f, err := organize.ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		steps = append(steps, f)
	}

	renames, _ := cmd.Flags().GetStringSlice("rename")
	if len(renames) > 0 {
		mapping := make(map[string]string, len(renames))
		for _, pair := range renames {
			from, to, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid rename %q: expected old=new", pair)
			}
			mapping[from] = to
		}
		steps = append(steps, organize.Rename{Mapping: mapping})
	}

	if groupBy, _ := cmd.Flags().GetString("group-by"); groupBy != "" {
		sum, _ := cmd.Flags().GetStringSlice("sum")
		steps = append(steps, organize.Aggregate{GroupBy: groupBy, Sum: sum})
	}

	if sortCol, _ := cmd.Flags().GetString("sort"); sortCol != "" {
		desc, _ := cmd.Flags().GetBool("desc")
		steps = append(steps, organize.Sort{Column: sortCol, Descending: desc})
	}

	return steps, nil
}

func init() {
	addReaderFlags(processCmd)

	// Organize flags.
	processCmd.Flags().String("recipe", "", "YAML recipe file with organize steps")
	processCmd.Flags().StringArray("filter", nil, `filter expression, e.g. "amount > 15" (repeatable)`)
	processCmd.Flags().StringSlice("rename", nil, "column renames as old=new (comma-separated)")
	processCmd.Flags().String("group-by", "", "aggregate rows grouped by this column")
	processCmd.Flags().StringSlice("sum", nil, "numeric columns to sum per group (with --group-by)")
	processCmd.Flags().String("sort", "", "sort rows by this column (stable)")
	processCmd.Flags().Bool("desc", false, "sort descending (with --sort)")

	// Report flags.
	processCmd.Flags().String("output-dir", "outputs", "directory reports are written into")
	processCmd.Flags().String("out", "", "output file name (default: <input>_processed.<format>)")
	processCmd.Flags().String("report-format", "xlsx", "report format: xlsx or csv")
	processCmd.Flags().String("report-sheet", report.DefaultSheetName, "Excel sheet name for xlsx reports")

	// Ledger flags.
	processCmd.Flags().String("ledger-dir", "ledger", "base directory for the run ledger")
	processCmd.Flags().Bool("no-ledger", false, "do not record this run in the ledger")

	rootCmd.AddCommand(processCmd)
}
