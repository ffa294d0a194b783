package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mtlsort/internal/configloader"
	"github.com/yaklabco/mtlsort/internal/logging"
	"github.com/yaklabco/mtlsort/internal/ui/pretty"
	"github.com/yaklabco/mtlsort/pkg/config"
	"github.com/yaklabco/mtlsort/pkg/fsutil"
	"github.com/yaklabco/mtlsort/pkg/mtl"
	"github.com/yaklabco/mtlsort/pkg/reporter"
	"github.com/yaklabco/mtlsort/pkg/runner"
)

// sortArgCount is the number of positional arguments: geometry then material.
const sortArgCount = 2

type sortFlags struct {
	dryRun      bool
	noBackups   bool
	format      string
	comments    string
	prefix      string
	geometryOut string
	materialOut string
}

func newSortCommand() *cobra.Command {
	flags := &sortFlags{}

	cmd := &cobra.Command{
		Use:         "sort [flags] <geometry.obj> <material.mtl>",
		Short:       "Sort an OBJ/MTL pair (the default command)",
		Long:        sortLongDescription,
		Annotations: map[string]string{argumentsAnnotation: pairArguments},
		Args:        exactPair,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args, flags)
		},
	}

	addSortFlags(cmd, flags)

	return cmd
}

const sortLongDescription = `Rewrite a geometry (OBJ) and material (MTL) file so that every usemtl
line refers to its own material, numbered in order of use, and the
material file declares exactly those materials in that order.

Both files are replaced in place unless --geometry-out or --material-out
name other destinations. Nothing is written when any usemtl line names a
material the MTL file does not declare.

Examples:
  mtlsort sort scene.obj scene.mtl                 # Sort in place with backups
  mtlsort sort --dry-run scene.obj scene.mtl       # Report without writing
  mtlsort sort --format diff scene.obj scene.mtl   # Show the changes as a diff
  mtlsort sort --comments strip scene.obj scene.mtl
  mtlsort sort --prefix part_ scene.obj scene.mtl  # part_0, part_1, ...`

func addSortFlags(cmd *cobra.Command, flags *sortFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report the rewrite without writing files")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, diff")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not create .mtlsort.bak backups")
	addRewriteFlags(cmd, &flags.comments, &flags.prefix)
	cmd.Flags().StringVar(&flags.geometryOut, "geometry-out", "", "write the geometry here instead of in place")
	cmd.Flags().StringVar(&flags.materialOut, "material-out", "", "write the materials here instead of in place")
}

// addRewriteFlags registers the flags that change the rewrite itself.
func addRewriteFlags(cmd *cobra.Command, comments, prefix *string) {
	cmd.Flags().StringVar(comments, "comments", string(mtl.CommentsKeep), "comment lines in the geometry: keep, strip")
	cmd.Flags().StringVar(prefix, "prefix", mtl.DefaultNamePrefix, "prefix for generated material names")
}

// exactPair validates the geometry and material positional arguments.
func exactPair(_ *cobra.Command, args []string) error {
	if len(args) != sortArgCount {
		return fmt.Errorf("%w: expected <geometry.obj> <material.mtl>, got %d arguments", ErrUsage, len(args))
	}
	return nil
}

// cliConfig builds the CLI layer of the configuration. Only flags the user
// actually set are carried, so unset flags do not mask config files.
func (f *sortFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := rewriteConfig(cmd, f.comments, f.prefix)
	cfg.DryRun = f.dryRun
	cfg.NoBackups = f.noBackups
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	return cfg
}

func rewriteConfig(cmd *cobra.Command, comments, prefix string) *config.Config {
	cfg := &config.Config{}
	if cmd.Flags().Changed("comments") {
		cfg.Comments = mtl.CommentPolicy(comments)
	}
	if cmd.Flags().Changed("prefix") {
		cfg.NamePrefix = prefix
	}
	return cfg
}

func runSort(cmd *cobra.Command, args []string, flags *sortFlags) error {
	return execute(cmd, runRequest{
		geometry:    args[0],
		material:    args[1],
		geometryOut: flags.geometryOut,
		materialOut: flags.materialOut,
		cliConfig:   flags.cliConfig(cmd),
	})
}

// runRequest is one resolved invocation of the rewrite.
type runRequest struct {
	geometry    string
	material    string
	geometryOut string
	materialOut string
	cliConfig   *config.Config
}

// execute loads configuration, runs the rewrite and reports the result.
func execute(cmd *cobra.Command, req runRequest) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    req.cliConfig,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldComments, cfg.Comments,
		logging.FieldPrefix, cfg.NamePrefix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldFormat, cfg.Format,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	runOpts := runner.Options{
		GeometryPath: req.geometry,
		MaterialPath: req.material,
		GeometryOut:  req.geometryOut,
		MaterialOut:  req.materialOut,
		DryRun:       cfg.DryRun,
		Diff:         format == reporter.FormatDiff,
		Backups: fsutil.BackupConfig{
			Enabled: cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	}

	warnUnprotected(runOpts)

	logger.Debug("starting sort",
		logging.FieldGeometry, runOpts.GeometryPath,
		logging.FieldMaterial, runOpts.MaterialPath,
		logging.FieldWorkingDir, workDir,
	)

	result, err := runner.New(mtl.New(cfg.RewriterOptions())).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("sort failed: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}

// warnUnprotected tells a person at a terminal that an input is about to be
// replaced with no backup to restore from.
func warnUnprotected(opts runner.Options) {
	if opts.DryRun || opts.Backups.Enabled || !pretty.IsInteractive(os.Stderr) {
		return
	}

	inPlace := opts.GeometryOut == "" || opts.MaterialOut == ""
	if !inPlace {
		return
	}

	logging.NewInteractive().Warn("backups are disabled, rewriting in place",
		logging.FieldGeometry, opts.GeometryTarget(),
		logging.FieldMaterial, opts.MaterialTarget(),
	)
}
