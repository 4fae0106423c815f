// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/statement-engine/internal/reader"
	"github.com/pdiddy/statement-engine/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [input]",
	Short: "Preview what an input file parses into, without writing a report",
	Long: `Inspect reads an input file with the same settings process would use
and prints the extracted records to stdout. Use it to tune the
extraction flags before committing to a report.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := readerConfigFromFlags(cmd)

	table, err := reader.Read(args[0], cfg)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return printYAML(cmd, table, limit)
	}
	return printAligned(cmd, table, limit)
}

func printAligned(cmd *cobra.Command, table *types.Table, limit int) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	for i, col := range table.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)

	shown := 0
	for _, rec := range table.Rows {
		if limit > 0 && shown >= limit {
			break
		}
		for i, col := range table.Columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, rec[col].String())
		}
		fmt.Fprintln(w)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if limit > 0 && table.Len() > limit {
		fmt.Fprintf(cmd.OutOrStdout(), "... %d more records\n", table.Len()-limit)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", table.Len())
	return nil
}

func printYAML(cmd *cobra.Command, table *types.Table, limit int) error {
	rows := table.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]map[string]string, 0, len(rows))
	for _, rec := range rows {
		m := make(map[string]string, len(table.Columns))
		for _, col := range table.Columns {
			m[col] = rec[col].String()
		}
		out = append(out, m)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	addReaderFlags(inspectCmd)
	inspectCmd.Flags().Int("limit", 0, "show at most this many records (0 = all)")
	inspectCmd.Flags().Bool("yaml", false, "print records as YAML instead of an aligned table")

	rootCmd.AddCommand(inspectCmd)
}
