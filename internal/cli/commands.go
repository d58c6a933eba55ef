package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/filewalker"
	"rpy-translator/internal/pipeline"
	"rpy-translator/internal/worker"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file-or-folder>",
		Short: "Extract translatable text from scripts into segment files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0])
		},
	}
}

func reconstructCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconstruct <file-or-folder>",
		Short: "Rebuild scripts from the edited segment files",
		Long: `Rebuilds every script from its edited segment files. Files placed under
the workspace translated/ directory are preferred over the extracted ones.
With --new-file the result is written next to the original, which is then
commented out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newFile, _ := cmd.Flags().GetBool("new-file")
			force, _ := cmd.Flags().GetBool("force")
			mode := pipeline.Overwrite
			if newFile {
				mode = pipeline.NewFile
			}
			return runReconstruct(args[0], mode, force)
		},
	}

	cmd.Flags().Bool("new-file", false, "Write <name>_translated.rpy and comment out the original")
	cmd.Flags().Bool("force", false, "Reconstruct even when segment counts do not match")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file-or-folder>",
		Short: "Compare edited segment counts with the extraction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file-or-folder>",
		Short: "Audit translated scripts for markup mismatches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

// discover lists the scripts to process.
func discover(target, translatedSuffix string) ([]string, error) {
	files, err := filewalker.NewWalker(translatedSuffix).Walk(target)
	if err != nil {
		return nil, fmt.Errorf("find scripts: %w", err)
	}
	if len(files) == 0 {
		log.Warn().Str("path", target).Msg("No script files found")
	}
	return files, nil
}

// runExtract handles the `extract` command.
func runExtract(target string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	svc, cleanup := newService(ctx, cfg, true)
	defer cleanup()

	files, err := discover(target, cfg.TranslatedSuffix)
	if err != nil {
		return err
	}

	pool := worker.NewPool[string, *pipeline.ExtractResult](cfg.WorkerCount, svc.ExtractFile)
	tasks := pool.Execute(ctx, files)

	for _, t := range tasks {
		if t.Err != nil {
			printFailure(t.Input, t.Err)
			continue
		}
		printExtract(t.Result)
	}
	return errorSummary(worker.Failed(tasks), len(tasks))
}

// runReconstruct handles the `reconstruct` command.
func runReconstruct(target string, mode pipeline.SaveMode, force bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	svc, cleanup := newService(ctx, cfg, false)
	defer cleanup()

	files, err := discover(target, cfg.TranslatedSuffix)
	if err != nil {
		return err
	}

	pool := worker.NewPool[string, *pipeline.ReconstructResult](cfg.WorkerCount, func(ctx context.Context, path string) (*pipeline.ReconstructResult, error) {
		if !force {
			v, err := svc.ValidateFile(ctx, path)
			if err != nil {
				return nil, err
			}
			if !v.OK() {
				printValidation(path, v)
				return nil, fmt.Errorf("segment counts do not match, fix the files or use --force")
			}
		}
		return svc.ReconstructFile(ctx, path, mode)
	})
	tasks := pool.Execute(ctx, files)

	for _, t := range tasks {
		if t.Err != nil {
			printFailure(t.Input, t.Err)
			continue
		}
		printReconstruct(t.Result)
	}
	return errorSummary(worker.Failed(tasks), len(tasks))
}

// runValidate handles the `validate` command.
func runValidate(target string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	svc, cleanup := newService(ctx, cfg, false)
	defer cleanup()

	files, err := discover(target, cfg.TranslatedSuffix)
	if err != nil {
		return err
	}

	pool := worker.NewPool[string, *artifact.Validation](cfg.WorkerCount, svc.ValidateFile)
	tasks := pool.Execute(ctx, files)

	mismatched := 0
	for _, t := range tasks {
		if t.Err != nil {
			printFailure(t.Input, t.Err)
			continue
		}
		printValidation(t.Input, t.Result)
		if !t.Result.OK() {
			mismatched++
		}
	}
	if err := errorSummary(worker.Failed(tasks), len(tasks)); err != nil {
		return err
	}
	if mismatched > 0 {
		return fmt.Errorf("%d of %d files have mismatched segment counts", mismatched, len(tasks))
	}
	return nil
}

// runCheck handles the `check` command.
func runCheck(target string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	svc, cleanup := newService(ctx, cfg, false)
	defer cleanup()

	files, err := discover(target, "")
	if err != nil {
		return err
	}

	pool := worker.NewPool[string, *pipeline.CheckResult](cfg.WorkerCount, svc.CheckFile)
	tasks := pool.Execute(ctx, files)

	for _, t := range tasks {
		if t.Err != nil {
			printFailure(t.Input, t.Err)
			continue
		}
		printCheck(t.Input, t.Result)
	}
	return errorSummary(worker.Failed(tasks), len(tasks))
}

