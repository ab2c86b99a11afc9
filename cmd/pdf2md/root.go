package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pdf2md [file...]",
	Short: "Convert PDF documents to markdown",
	Long: `pdf2md converts PDF documents to markdown, reconstructing document
structure from layout:

  - Font sizes become heading levels (largest is #, next is ##, ...)
  - Ruled grids become markdown tables
  - Embedded images are extracted beside the output and linked

Each input produces <name>.md next to it (or under --output-dir), with
extracted images in <name>_media/. With --page-demarcation=split, each
page becomes its own <name>_page<N>.md file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("output-dir", "o", "", "directory for output files (default: alongside each input)")
	flags.BoolP("no-images", "n", false, "skip image extraction")
	flags.StringP("page-demarcation", "p", "none", "page boundary policy: none, rule, or split")
	flags.Bool("remove-headers", false, "strip markdown heading syntax found inside source text")
	flags.String("table-header", "###", "label line emitted above each table")
	flags.Bool("skip-empty-tables", false, "omit tables whose cells are all blank")
	flags.Bool("keep-empty-table-header", false, "keep the table label for skipped empty tables")
	flags.Bool("no-progress", false, "disable progress output")
	flags.Bool("verbose", false, "enable debug logging")

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./pdf2md.yaml or ~/.pdf2md/config.yaml)",
	)

	cobra.CheckErr(viper.BindPFlags(flags))
}

// initConfig wires the config file and environment into viper. Flags
// were bound in init, so precedence is flags, then env, then file.
func initConfig() error {
	viper.SetEnvPrefix("PDF2MD")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pdf2md")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := conversionOptions{
		outputDir:            viper.GetString("output-dir"),
		noImages:             viper.GetBool("no-images"),
		demarcation:          viper.GetString("page-demarcation"),
		removeHeaders:        viper.GetBool("remove-headers"),
		tableHeader:          viper.GetString("table-header"),
		skipEmptyTables:      viper.GetBool("skip-empty-tables"),
		keepEmptyTableHeader: viper.GetBool("keep-empty-table-header"),
		showProgress:         !viper.GetBool("no-progress"),
	}

	failed := 0
	for _, input := range args {
		if err := convertFile(cmd.Context(), logger, input, opts); err != nil {
			logger.Error("conversion failed", "file", input, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(args))
	}
	return nil
}
