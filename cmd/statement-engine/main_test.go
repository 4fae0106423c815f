// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/pdiddy/statement-engine/internal/report"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// Settings resolve flag > config file > default, with the file values
// decoded through the pipeline configuration.
func TestConfigResolution(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setConfigDefaults()

	viper.Set("reader.min_numbers", 3)
	viper.Set("reader.pdf_backend", "pdftotext")
	viper.Set("report.output_dir", "relatorios")
	viper.Set("ledger.max_results", 5)

	rCfg := readerConfigFromFlags(processCmd)
	if rCfg.MinNumbers != 3 {
		t.Errorf("MinNumbers = %d, want 3 from config", rCfg.MinNumbers)
	}
	if rCfg.PDFBackend != types.BackendPdftotext {
		t.Errorf("PDFBackend = %q, want pdftotext from config", rCfg.PDFBackend)
	}
	if !rCfg.RequireDate {
		t.Error("RequireDate lost its default")
	}

	repCfg := reportConfigFromFlags(processCmd)
	if repCfg.OutputDir != "relatorios" {
		t.Errorf("OutputDir = %q, want relatorios from config", repCfg.OutputDir)
	}
	if repCfg.Format != types.ReportExcel {
		t.Errorf("Format = %q, want default xlsx", repCfg.Format)
	}
	if repCfg.SheetName != report.DefaultSheetName {
		t.Errorf("SheetName = %q, want default %q", repCfg.SheetName, report.DefaultSheetName)
	}

	lCfg := ledgerConfigFromFlags(processCmd)
	if lCfg.LedgerDir != "ledger" {
		t.Errorf("LedgerDir = %q, want default ledger", lCfg.LedgerDir)
	}
	if lCfg.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5 from config", lCfg.MaxResults)
	}

	// An explicitly set flag wins over the config file.
	if err := processCmd.Flags().Set("min-numbers", "4"); err != nil {
		t.Fatal(err)
	}
	if got := readerConfigFromFlags(processCmd).MinNumbers; got != 4 {
		t.Errorf("MinNumbers = %d, want 4 from flag", got)
	}
}
