package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/anrid/popu-ranking/pkg/config"
	"github.com/anrid/popu-ranking/pkg/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	earlier    int
	later      int
	delimiter  string
	encoding   string
	format     string
	label      string
	outPath    string
	savePath   string
	dump       bool
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "popu-ranking [input]",
	Short: "Rank prefectures by population change between two census years",
	Long: `Reads per-prefecture population records and ranks prefectures by the
ratio of their population in the later census year to the earlier one.

Columns used: 0 = year, 2 = prefecture, 7 = population.
Input may be a CSV file, an .xlsx/.xls workbook, or an http(s) URL.

Example:
  popu-ranking ./popu-pref.csv --earlier 2010 --later 2015`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRanking,
}

var showCmd = &cobra.Command{
	Use:   "show [report.json]",
	Short: "Print a previously saved ranking report",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "popu-ranking.yaml", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", stats.FormatList, "Output format: list, array, table, json, xlsx")
	rootCmd.PersistentFlags().StringVar(&label, "label", stats.DefaultLabel, "Label printed before the change ratio")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Output file (required for xlsx)")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "Dump the ranking to stderr for debugging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().IntVar(&earlier, "earlier", stats.DefaultYears.Earlier, "Earlier census year")
	rootCmd.Flags().IntVar(&later, "later", stats.DefaultYears.Later, "Later census year")
	rootCmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "Field delimiter")
	rootCmd.Flags().StringVarP(&encoding, "encoding", "e", "utf-8", "Input text encoding: utf-8, shift_jis, euc-jp")
	rootCmd.Flags().StringVar(&savePath, "save", "", "Save the ranking as a JSON report")

	rootCmd.AddCommand(showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadConfig merges the config file with any flags set on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if flags.Changed("earlier") {
		cfg.Years.Earlier = earlier
	}
	if flags.Changed("later") {
		cfg.Years.Later = later
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = delimiter
	}
	if flags.Changed("encoding") {
		cfg.Encoding = encoding
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("label") {
		cfg.Label = label
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runRanking(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	logger.Debug("Loaded config",
		zap.String("input", cfg.Input),
		zap.Int("earlier", cfg.Years.Earlier),
		zap.Int("later", cfg.Years.Later))

	r, err := stats.Run(context.Background(), stats.RunArgs{
		Input:   cfg.Input,
		Years:   cfg.Years,
		Options: cfg.Options(),
		Log:     logger,
	})
	if err != nil {
		return err
	}

	if savePath != "" {
		if err := r.Save(savePath); err != nil {
			return err
		}
		logger.Info("Saved report", zap.String("path", savePath), zap.String("id", r.ID))
	}

	return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, cfg.Format, cfg.Label)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = format
	}
	if cmd.Flags().Changed("label") {
		cfg.Label = label
	}
	if !stats.IsFormat(cfg.Format) {
		return fmt.Errorf("unsupported format '%s'", cfg.Format)
	}

	r, found, err := stats.LoadIfExists(args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no report found at '%s'", args[0])
	}

	return emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, cfg.Format, cfg.Label)
}

func emit(stdout, stderr io.Writer, r *stats.Report, format, label string) error {
	if dump {
		stats.Dump(stderr, r.Entries)
	}

	if format == stats.FormatXLSX {
		if outPath == "" {
			return fmt.Errorf("the xlsx format needs an --out file")
		}
		if err := stats.SaveXLSX(outPath, r, label); err != nil {
			return err
		}
		logger.Info("Wrote workbook", zap.String("path", outPath))
		return nil
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("could not create '%s': %w", outPath, err)
		}
		defer f.Close()
		return stats.Write(f, r, format, label)
	}
	return stats.Write(stdout, r, format, label)
}
