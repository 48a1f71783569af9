// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// scan → extract → resolve → emit → materialize → collect.
//
// It handles flag and config merging, renderer selection, and the
// optional post-run validation pass.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/assets"
	"github.com/gaurav-prasanna/mdforge/core/config"
	"github.com/gaurav-prasanna/mdforge/core/emit"
	"github.com/gaurav-prasanna/mdforge/core/extract"
	"github.com/gaurav-prasanna/mdforge/core/graph"
	"github.com/gaurav-prasanna/mdforge/core/manifest"
	"github.com/gaurav-prasanna/mdforge/core/pathnorm"
	"github.com/gaurav-prasanna/mdforge/core/registry"
	"github.com/gaurav-prasanna/mdforge/core/render"
	"github.com/gaurav-prasanna/mdforge/core/resolve"
	"github.com/gaurav-prasanna/mdforge/core/source"
	"github.com/gaurav-prasanna/mdforge/core/validate"
)

// Flag variables. Defaults come from the config file when --config is
// given; a flag set on the command line always wins.
var (
	flagConfig   string
	flagInput    string
	flagOutput   string
	flagProject  string
	flagForce    bool
	flagFailFast bool
	flagValidate bool
	flagPDF      bool
	flagLogLevel string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an HTML documentation tree to Markdown",
	Long: `Convert walks the input tree, extracts the main content of every HTML
document, rewrites image and hyperlink references to canonical absolute
paths, and writes the Markdown mirror to the output directory. Identical
images are stored once, keyed by content.

Examples:
  mdforge convert --input ./html --output ./md --project myproject
  mdforge convert --config mdforge.yaml --force
  mdforge convert --input ./html --output ./md --project myproject --pdf --validate`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file (flags override it)")
	convertCmd.Flags().StringVar(&flagInput, "input", "", "Input directory containing HTML documentation")
	convertCmd.Flags().StringVar(&flagOutput, "output", "", "Output directory for the Markdown tree")
	convertCmd.Flags().StringVar(&flagProject, "project", "", "Project name, used for the image namespace")
	convertCmd.Flags().BoolVar(&flagForce, "force", false, "Write into a non-empty output directory")
	convertCmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "Abort on the first unreadable document")
	convertCmd.Flags().BoolVar(&flagValidate, "validate", false, "Validate the output tree after conversion")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Write a companion PDF next to each Markdown document")
	convertCmd.Flags().StringVar(&flagLogLevel, "log-level", config.LevelInfo, "Log level: debug, info, warn, error")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))

	if err := cfg.Check(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return run(cfg)
}

// buildConfig merges the optional config file with command-line flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewDefault()
	if flagConfig != "" {
		if err := config.Load(flagConfig, cfg); err != nil {
			return nil, err
		}
	}

	override := func(name string, apply func()) {
		if cmd.Flags().Changed(name) || flagConfig == "" {
			apply()
		}
	}
	override("input", func() { cfg.Input = flagInput })
	override("output", func() { cfg.Output = flagOutput })
	override("project", func() { cfg.Project = flagProject })
	override("force", func() { cfg.Force = flagForce })
	override("fail-fast", func() { cfg.FailFast = flagFailFast })
	override("validate", func() { cfg.Validate = flagValidate })
	override("pdf", func() { cfg.PDF = flagPDF })
	override("log-level", func() { cfg.LogLevel = flagLogLevel })
	return cfg, nil
}

// run executes the full pipeline for one configuration.
func run(cfg *config.Config) error {
	tree, err := source.New(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}

	ok, err := emit.Overwritable(cfg.Output, cfg.Force)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("output directory %s is not empty (use --force to overwrite)", cfg.Output)
	}

	report := &core.Report{}
	g, err := graph.Build(tree, extract.New(), cfg.FailFast, report)
	if err != nil {
		return fmt.Errorf("building document graph: %w", err)
	}
	slog.Info("discovered documents", "count", len(g.Documents))

	reg := registry.New()
	resolve.New(tree, reg, cfg.Project).Resolve(g, report)

	renderers := []core.Renderer{render.NewMarkdownRenderer()}
	if cfg.PDF {
		renderers = append(renderers, render.NewPDFRenderer())
	}
	emitter, err := emit.New(cfg.Output, render.NewNormalizer(), renderers...)
	if err != nil {
		return err
	}
	for _, doc := range g.Documents {
		if err := emitter.Emit(doc); err != nil {
			return err
		}
	}

	nsDir := filepath.Join(cfg.Output,
		filepath.FromSlash(resolve.ImageNamespace), pathnorm.Name(cfg.Project))
	if err := assets.Materialize(tree, reg, nsDir); err != nil {
		return fmt.Errorf("materializing images: %w", err)
	}
	if err := emitter.CopyAux(tree, cfg.Project); err != nil {
		return fmt.Errorf("copying auxiliary files: %w", err)
	}
	removed, err := assets.Collect(cfg.Output, nsDir, reg)
	if err != nil {
		return fmt.Errorf("collecting garbage: %w", err)
	}

	if err := manifest.Write(cfg.Output, manifest.Build(cfg.Project, g, reg, report)); err != nil {
		return err
	}

	slog.Info("conversion complete",
		"documents", len(g.Documents),
		"image_references", report.Stats.TotalReferences,
		"unique_images", report.Stats.UniqueImages,
		"duplicates_removed", report.Stats.DuplicatesRemoved(),
		"dedup_ratio", report.Stats.Ratio(),
		"removed_stale", removed,
	)
	for _, s := range report.Skipped {
		slog.Warn("skipped document", "path", s.Path, "reason", s.Reason)
	}
	for _, b := range report.Broken {
		slog.Warn("broken reference", "document", b.Document, "ref", b.Raw, "kind", b.Kind)
	}
	for _, c := range report.Collisions {
		slog.Warn("output path collision", "output", c.Output, "sources", c.Sources)
	}

	if cfg.Validate {
		return runValidation(cfg.Output)
	}
	return nil
}

// runValidation checks the finished output tree and fails the run if any
// issue is found.
func runValidation(outputRoot string) error {
	issues, err := validate.New(outputRoot).Run()
	if err != nil {
		return fmt.Errorf("validating output: %w", err)
	}
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  ✗ %s\n", issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("validation found %d issues", len(issues))
	}
	fmt.Fprintln(os.Stdout, "✓ Validation passed")
	return nil
}
