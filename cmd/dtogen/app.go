package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/compiler/emitter"
	"github.com/strogmv/dtogen/internal/config"
	"github.com/strogmv/dtogen/internal/pkg/logger"
	"github.com/strogmv/dtogen/internal/pkg/metrics"
	"github.com/strogmv/dtogen/internal/pkg/telemetry"
)

// skipSetup marks commands that run without loading the project.
const skipSetup = "dtogen/skip-setup"

// app is the state shared by every command of one invocation.
type app struct {
	appRoot   string
	logLevel  string
	logFormat string

	cfg      *config.Config
	metrics  *metrics.Metrics
	pipeline *compiler.Pipeline
	shutdown telemetry.Shutdown
	runID    string
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dtogen",
		Short:         "Generate DTOs and VineJS validators from AdonisJS Lucid models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.appRoot, "app-root", ".", "application root")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(newMakeDtoCmd(a))
	rootCmd.AddCommand(newMakeValidatorCmd(a))
	rootCmd.AddCommand(newGenerateDtosCmd(a))
	rootCmd.AddCommand(newGenerateValidatorsCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newMCPCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.appRoot)
	if err != nil {
		return compiler.WrapContractError(compiler.StageConfig, compiler.ErrCodeConfigLoad, "load config", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return compiler.WrapContractError(compiler.StageConfig, compiler.ErrCodeConfigValidate, "validate flags", err)
	}
	a.cfg = cfg

	a.runID = uuid.NewString()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()).With("run_id", a.runID, "command", cmd.Name())
	ctx := logger.WithContext(cmd.Context(), log)
	cmd.SetContext(ctx)

	shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, compiler.Version)
	if err != nil {
		return compiler.WrapContractError(compiler.StageConfig, compiler.ErrCodeConfigLoad, "setup telemetry", err)
	}
	a.shutdown = shutdown

	// Runtime collectors only make sense for the long-running server.
	a.metrics = metrics.New(cmd.Name() == "serve")
	a.pipeline = compiler.NewPipeline(compiler.PipelineOptions{
		AppRoot:      cfg.AppRoot,
		ModelsDir:    cfg.ModelsDir,
		TemplatesDir: templatesDir(cfg),
		Paths: emitter.Paths{
			DtosDir:         cfg.DtosDir,
			ValidatorsDir:   cfg.ValidatorsDir,
			ModelsNamespace: cfg.ModelsNamespace,
			DtosNamespace:   cfg.DtosNamespace,
			BaseDtoPackage:  cfg.BaseDtoPackage,
		},
		Recorder:    a.metrics,
		Concurrency: cfg.Concurrency,
	})

	log.Debug("configuration loaded", "app_root", cfg.AppRoot, "models_dir", a.pipeline.ModelsDir())
	return nil
}

func templatesDir(cfg *config.Config) string {
	if cfg.TemplatesDir == "" {
		return ""
	}
	return cfg.Resolve(cfg.TemplatesDir)
}

// close flushes traces and writes the metrics textfile. It runs whether or
// not the command failed.
func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
		a.shutdown = nil
	}
	if a.cfg != nil && a.cfg.MetricsFile != "" && a.metrics != nil {
		if err := a.metrics.WriteTextfile(a.cfg.Resolve(a.cfg.MetricsFile)); err != nil {
			slog.Warn("metrics textfile not written", "error", err)
		}
	}
}
