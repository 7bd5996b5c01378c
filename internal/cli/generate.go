package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mddocs/config"
	"mddocs/internal/adapter/cache"
	"mddocs/internal/adapter/markdown"
	"mddocs/internal/adapter/store"
	"mddocs/internal/logger"
	"mddocs/internal/port"
	"mddocs/internal/usecase"
)

var (
	genOutput     string
	genFull       bool
	genNoProgress bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Markdown pages",
	Long: `Resolve every public, documented type of the configured module and write
one page per type and per documented member.

Unchanged pages are skipped using the manifest in <output>/.mddocs/manifest.db.

Examples:
  mddocs generate                 # Generate into the configured output
  mddocs generate -o site/api     # Generate into another directory
  mddocs generate --full          # Ignore the manifest and rewrite every page`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output directory (default from config)")
	generateCmd.Flags().BoolVar(&genFull, "full", false, "rewrite every page regardless of the manifest")
	generateCmd.Flags().BoolVar(&genNoProgress, "no-progress", false, "disable the progress bar")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	output := cfg.Generate.Output
	if genOutput != "" {
		output = genOutput
	}
	output = resolvePath(output)

	switch cfg.Generate.OnDecompilerError {
	case "", config.OnErrorAbort, config.OnErrorSkip:
	default:
		return errors.WithHint(
			errors.Newf("unknown on_decompiler_error %q", cfg.Generate.OnDecompilerError),
			"use \"abort\" or \"skip\"")
	}

	resolver, module, err := newResolver(cfg)
	if err != nil {
		return err
	}

	incremental := cfg.Generate.Incremental && !genFull
	cached := cfg.Decompiler.Mode == config.DecompilerExec && cfg.Decompiler.Cache

	var (
		pages port.PageStore
		decls port.DeclarationStore
	)
	if incremental || cached {
		st, err := openManifest(cfg, output, incremental)
		if err != nil {
			return err
		}
		defer st.Close()
		if incremental {
			pages = st
		}
		if cached {
			decls = st
		}
	}

	dec, err := newDecompiler(cfg, decls)
	if err != nil {
		return err
	}

	generateUC := usecase.NewGenerateUseCase(resolver, usecase.NewSynthesizer(dec), markdown.NewRenderer(), pages)

	fmt.Printf("Generating documentation for %s into %s...\n", module.Name(), output)

	opts := usecase.GenerateOptions{
		OutputDir:            output,
		SkipDecompilerErrors: cfg.Generate.OnDecompilerError == config.OnErrorSkip,
		Clean:                cfg.Generate.Clean,
	}
	if !genNoProgress {
		opts.Progress = progressCallback("Generating")
	}

	result, err := generateUC.Generate(cmd.Context(), opts)
	if err != nil {
		return errors.Wrap(err, "generation failed")
	}

	if c, ok := dec.(*cache.CachedDecompiler); ok {
		hits, misses := c.Stats()
		logger.Logger.Infow("declaration cache", "hits", hits, "misses", misses)
	}

	if st, ok := pages.(*store.BoltStore); ok {
		if err := st.Migrate(cfg); err != nil {
			return errors.Wrap(err, "failed to update manifest schema info")
		}
	}

	fmt.Printf("\nGeneration complete:\n")
	fmt.Printf("  Types:           %d\n", result.Types)
	fmt.Printf("  Members:         %d\n", result.Members)
	fmt.Printf("  Pages written:   %d\n", result.PagesWritten)
	fmt.Printf("  Pages unchanged: %d\n", result.PagesUnchanged)
	fmt.Printf("  Pages deleted:   %d\n", result.PagesDeleted)

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	return nil
}

// openManifest opens the manifest database under output. With pages set it
// clears the page hashes when the schema or the generation settings changed
// since they were written.
func openManifest(cfg *config.Config, output string, pages bool) (*store.BoltStore, error) {
	if err := config.EnsureManifestDir(output); err != nil {
		return nil, errors.Wrap(err, "failed to create manifest directory")
	}

	st, err := store.NewBoltStore(config.ManifestPath(output))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open manifest")
	}
	if !pages {
		return st, nil
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, errors.Wrap(err, "failed to check manifest")
	}
	if migration.NeedsRebuild {
		fmt.Printf("Manifest rebuild required: %s\n", migration.Reason)
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, errors.Wrap(err, "failed to clear manifest")
		}
	} else if migration.NeedsMigration {
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, errors.Wrap(err, "manifest migration failed")
		}
	}
	return st, nil
}

func progressCallback(label string) func(done, total int, current string) {
	var (
		bar       *progressbar.ProgressBar
		mu        sync.Mutex
		startTime time.Time
	)
	return func(done, total int, current string) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+label+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		_ = bar.Set(done)

		if done > 0 && done < total {
			elapsed := time.Since(startTime)
			rate := float64(done) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-done)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]%s[reset] %s ETA: %s", label, current, formatDuration(eta)))
			}
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
