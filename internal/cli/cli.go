package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/coherence"
	"rpy-translator/internal/config"
	"rpy-translator/internal/extract"
	"rpy-translator/internal/glossary"
	"rpy-translator/internal/pipeline"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "rpy-translator",
		Short: "Extract, reconstruct and audit Ren'Py dialogue translations",
		Long: `Extracts the translatable text of Ren'Py scripts into plain text files with
all markup protected by placeholders, rebuilds the scripts from the edited
files and audits translated scripts for structural mismatches.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(reconstructCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(glossaryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the configuration and applies the log level.
func loadConfig() *config.Config {
	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// newService builds the pipeline. Without a reachable glossary store the
// pipeline runs without a glossary.
func newService(ctx context.Context, cfg *config.Config, withGlossary bool) (*pipeline.Service, func()) {
	var (
		store   glossary.Store
		cleanup = func() {}
	)
	if withGlossary {
		s, closeFn, err := openGlossary(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Str("backend", cfg.GlossaryBackend).Msg("Glossary unavailable, continuing without it")
		} else if s != nil {
			store = glossary.NewCachedStore(s)
			cleanup = closeFn
		}
	}

	svc := pipeline.New(artifact.NewLayout(cfg.WorkspaceDir, cfg.AnchorDir), store, pipeline.Options{
		Extract: extract.Options{
			EmphasisMarker: cfg.EmphasisMarker,
			SkipPrefixes:   cfg.SkipPrefixes,
		},
		Coherence: coherence.Options{
			ShortLineMax:    cfg.ShortLineMax,
			CodeDensityMax:  cfg.CodeDensityMax,
			ContextLookback: cfg.ContextLookback,
			SkipPrefixes:    cfg.SkipPrefixes,
		},
		TranslatedSuffix: cfg.TranslatedSuffix,
	})
	return svc, cleanup
}

func errorSummary(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed", failed, total)
}
