package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rpy-translator/internal/config"
	"rpy-translator/internal/glossary"
)

func glossaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage the glossary of fixed term translations",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.tsv>",
		Short: "Load source<TAB>target pairs into the configured glossary store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			return runGlossaryImport(args[0], project)
		},
	}
	exportCmd := &cobra.Command{
		Use:   "export <file.tsv>",
		Short: "Write the glossary of a project as TSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			return runGlossaryExport(args[0], project)
		},
	}
	for _, c := range []*cobra.Command{importCmd, exportCmd} {
		c.Flags().String("project", "", "Project name; empty means shared by every project")
	}

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}

func requireGlossary(cfg *config.Config) error {
	if cfg.GlossaryBackend == "" || cfg.GlossaryBackend == config.GlossaryNone {
		return fmt.Errorf("no glossary backend configured, set GLOSSARY_BACKEND")
	}
	return nil
}

// runGlossaryImport handles the `glossary import` command.
func runGlossaryImport(path, project string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	if err := requireGlossary(cfg); err != nil {
		return err
	}
	store, cleanup, err := openGlossary(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open glossary file: %w", err)
	}
	defer f.Close()

	entries, err := glossary.ReadTSV(f)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := e.Check(); err != nil {
			return err
		}
	}

	written, err := store.Upsert(ctx, project, entries)
	if err != nil {
		return fmt.Errorf("import glossary: %w", err)
	}

	log.Info().Str("project", project).Int("read", len(entries)).Int("written", written).Msg("Glossary imported")
	fmt.Printf("%s imported %d of %d entries\n", green("OK"), written, len(entries))
	return nil
}

// runGlossaryExport handles the `glossary export` command.
func runGlossaryExport(path, project string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := loadConfig()
	if err := requireGlossary(cfg); err != nil {
		return err
	}
	store, cleanup, err := openGlossary(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := store.Entries(ctx, project)
	if err != nil {
		return fmt.Errorf("read glossary: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create TSV file: %w", err)
	}
	defer f.Close()

	if err := glossary.WriteTSV(f, entries); err != nil {
		return fmt.Errorf("write TSV file: %w", err)
	}

	log.Info().Str("path", path).Int("entries", len(entries)).Msg("Exported glossary to TSV")
	fmt.Printf("%s exported %d entries to %s\n", green("OK"), len(entries), cyan(path))
	return nil
}
