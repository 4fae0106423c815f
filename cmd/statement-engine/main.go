// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the statement-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/statement-engine/internal/report"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the statement-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "statement-engine",
	Short: "Organize bank statements and tabular files into reports",
	Long: `statement-engine reads bank statements and tabular company files
(.txt, .csv, .xlsx, .pdf), organizes the extracted records, and writes
Excel or CSV reports into the output directory.

Use process for the full pipeline, inspect to preview what a file
parses into, and runs to review the history of past invocations.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./statement-engine.yaml or ~/.config/statement-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("statement-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "statement-engine"))
		}
	}

	viper.SetEnvPrefix("STATEMENT_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setConfigDefaults registers the defaults the config file and
// environment can override. Flags set explicitly win over both.
func setConfigDefaults() {
	viper.SetDefault("reader.require_date", true)
	viper.SetDefault("reader.min_numbers", 2)
	viper.SetDefault("reader.pdf_backend", string(types.BackendNative))
	viper.SetDefault("report.output_dir", "outputs")
	viper.SetDefault("report.format", string(types.ReportExcel))
	viper.SetDefault("report.sheet_name", report.DefaultSheetName)
	viper.SetDefault("ledger.ledger_dir", "ledger")
	viper.SetDefault("ledger.max_results", 20)
}

// fileConfig decodes the loaded viper state (config file, environment,
// defaults) into the pipeline configuration.
func fileConfig() types.PipelineConfig {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid configuration: %v\n", err)
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
