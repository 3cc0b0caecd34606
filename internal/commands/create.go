package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/propgen"
)

// CreateCmd writes the properties file for a single iteration
func CreateCmd() *cobra.Command {
	var templatePath, basePath, outer, inner, outputPath string
	var sets []string
	var dryRun, diff bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write the properties file for one iteration",
		Long: `Write the properties file for one (outer, inner) iteration.

The template is read, overrides from --set replace default values, tokens are
substituted, and the result is written to --output. An existing file is
replaced.

Examples:
  wren create -t model.properties -b /data/run/ --outer 0 --inner 0 -o out.properties
  wren create -t model.properties -b /data/run/ --outer 1 --inner 2 -o out.properties --set max.hh.id=200000
  wren create ... --diff     # show what would change, write nothing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := commandLogger(cmd, "")
			if err != nil {
				return err
			}

			overrides, err := parseSets(sets)
			if err != nil {
				return fail(err)
			}
			overrides[propgen.BasePathKey] = basePath

			gen, err := propgen.New(templatePath, overrides, propgen.WithLogger(log))
			if err != nil {
				return fail(err)
			}

			output.Verbose(fmt.Sprintf("Template %s: %d root path keys, %d loop path keys",
				templatePath, len(gen.RootPathKeys()), len(gen.LoopPathKeys())))

			op, err := gen.CreateOp(outputPath, outer, inner)
			if err != nil {
				return fail(err)
			}

			if diff {
				if err := showDiff(op); err != nil {
					return fail(err)
				}
				return nil
			}

			err = generator.Execute(cmd.Context(), []generator.Operation{op}, generator.ExecuteOptions{
				DryRun: dryRun,
				Force:  true,
				Writer: cmd.OutOrStdout(),
			})
			if err != nil {
				return fail(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template properties file (required)")
	cmd.Flags().StringVarP(&basePath, "basepath", "b", "", "Base path substituted for BASEPATH (required)")
	cmd.Flags().StringVar(&outer, "outer", "0", "Outer loop index")
	cmd.Flags().StringVar(&inner, "inner", "0", "Inner loop index")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (required)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a template value, key=value (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff against the existing file without writing")

	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("basepath")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
