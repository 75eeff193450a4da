package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inferra-data/inferra-engine/pkg/adapters/source"
	"github.com/inferra-data/inferra-engine/pkg/config"
	"github.com/inferra-data/inferra-engine/pkg/llm"
	"github.com/inferra-data/inferra-engine/pkg/logging"
	"github.com/inferra-data/inferra-engine/pkg/report"
	"github.com/inferra-data/inferra-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inferra-engine",
		Short:         "Recover structure, keys, and business rules from raw tabular exports",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath string
		dataDir    string
		reportDir  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze every table in the data directory and write report artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, Version)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if reportDir != "" {
				cfg.ReportDir = reportDir
			}

			logger, err := logging.New(cfg.Env)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return runAnalysis(cmd, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yml", "path to the configuration file")
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "directory of source tables (overrides config)")
	cmd.Flags().StringVarP(&reportDir, "report-dir", "r", "", "directory for report artifacts (overrides config)")
	return cmd
}

func runAnalysis(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	ctx := cmd.Context()

	sources, err := source.Discover(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}
	if len(sources) == 0 {
		logger.Warn("No source tables found", zap.String("data_dir", cfg.DataDir))
		return nil
	}
	logger.Info("Starting analysis",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("sources", len(sources)),
		zap.String("version", cfg.Version))

	analyzer := services.NewAnalyzerService(cfg, logger)
	result, err := analyzer.Run(ctx, sources)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}

	refined := ""
	refiner, err := llm.NewRefiner(cfg.Refine, logger)
	if err != nil {
		return fmt.Errorf("init refiner: %w", err)
	}
	if refiner != nil {
		out, err := refiner.Refine(ctx, report.Markdown(result))
		if err != nil {
			// Refinement is best-effort; the raw report is always written.
			logger.Warn("Report refinement failed, keeping unrefined report",
				zap.String("error", logging.SanitizeError(err)))
		} else {
			refined = out
		}
	}

	writer := report.NewWriter(cfg.ReportDir, logger)
	if err := writer.WriteAll(result, refined); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	logger.Info("Analysis complete",
		zap.String("run_id", result.RunID.String()),
		zap.Int("tables", len(result.Tables)),
		zap.Int("relationships", len(result.Relationships)),
		zap.Int("implicit_relationships", len(result.ImplicitRelationships)))
	return nil
}
