// Package cli provides the Cobra command structure for mtlsort.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mtlsort/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mtlsort command with all subcommands.
// Invoked with a geometry and a material file, the root command sorts them
// exactly like "mtlsort sort".
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	flags := &sortFlags{}

	rootCmd := &cobra.Command{
		Use:   "mtlsort [flags] <geometry.obj> <material.mtl>",
		Short: "Reorder MTL materials to match their use in an OBJ file",
		Long: `mtlsort rewrites a Wavefront OBJ/MTL pair so that material declarations
appear in the order the geometry uses them.

Every "usemtl" line in the OBJ file gets its own fresh material name
(mat0, mat1, ...) and the MTL file is rebuilt with one declaration per
usage, in the same order. A material used twice is emitted twice.
Declarations that are never used are dropped.

WARNING: mtlsort rewrites the files it processes in place. Sidecar
backups (<file>.mtlsort.bak) are created unless --no-backups is given.`,
		Example: `  mtlsort scene.obj scene.mtl
  mtlsort --dry-run --format diff scene.obj scene.mtl
  mtlsort --geometry-out out.obj --material-out out.mtl scene.obj scene.mtl`,
		Annotations: map[string]string{argumentsAnnotation: pairArguments},
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 || len(args) == sortArgCount {
				return nil
			}
			return fmt.Errorf("%w: expected %d arguments, got %d", ErrUsage, sortArgCount, len(args))
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				logging.NewInteractive().Warn("this program modifies the files it processes, keep backups")
				return cmd.Help()
			}
			return runSort(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addSortFlags(rootCmd, flags)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newSortCommand())
	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
