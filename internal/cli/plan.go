package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mtlsort/pkg/config"
)

type planFlags struct {
	comments string
	prefix   string
	format   string
}

func newPlanCommand() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan [flags] <geometry.obj> <material.mtl>",
		Short: "Show how materials would be renamed, without writing",
		Long: `Print the renaming plan for an OBJ/MTL pair: one row per usemtl line,
with the declaration it resolves to and the name it receives. Rows marked
"+" copy a declaration an earlier row already emitted. Declarations no
usage refers to are listed as dropped.

No file is written.

Examples:
  mtlsort plan scene.obj scene.mtl
  mtlsort plan --format json scene.obj scene.mtl`,
		Annotations: map[string]string{argumentsAnnotation: pairArguments},
		Args:        exactPair,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args, flags)
		},
	}

	addRewriteFlags(cmd, &flags.comments, &flags.prefix)
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatTable), "output format: table, json")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string, flags *planFlags) error {
	cliCfg := rewriteConfig(cmd, flags.comments, flags.prefix)
	cliCfg.DryRun = true
	cliCfg.Format = config.OutputFormat(flags.format)

	return execute(cmd, runRequest{
		geometry:  args[0],
		material:  args[1],
		cliConfig: cliCfg,
	})
}
