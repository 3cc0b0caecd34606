package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/exec"
	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/propgen"
)

// plannedWrite is one iteration of a run with its rendered output path
type plannedWrite struct {
	it propgen.Iteration
	op *generator.WriteFileOp
}

// RunCmd writes the properties files for every iteration configured in wren.yml
func RunCmd() *cobra.Command {
	var configPath string
	var dryRun, diff, runHooks bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Write the properties files for every configured iteration",
		Long: `Write one properties file for every (outer, inner) iteration in wren.yml.

All files are written together: if any write fails, files written earlier in
the run are restored to their previous state. With --exec, the hook command
from wren.yml runs once per iteration after all files are written, with
WREN_OUTER, WREN_INNER, WREN_PROPERTIES and WREN_BASEPATH set.

Output paths and hook arguments are templates with .Outer, .Inner and
.BasePath, e.g. "{{.BasePath}}outer{{.Outer}}/inner{{.Inner}}/model.properties".

Examples:
  wren run
  wren run --config runs/base.yml --dry-run
  WREN_BASEPATH=/scratch/run2/ wren run --exec`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fail(err)
			}
			if err := cfg.Validate(); err != nil {
				return fail(oops.Wrapf(err, "invalid %s", configPath))
			}

			log, err := commandLogger(cmd, cfg.Log.Level)
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			log = log.WithFields(logger.F("run", runID))

			gen, err := propgen.New(cfg.Template, cfg.OverrideMap(),
				propgen.WithPolicies(cfg.Policies()),
				propgen.WithLogger(log),
			)
			if err != nil {
				return fail(err)
			}

			plan := propgen.Plan(cfg.Loops.Outer, cfg.Loops.Inner)
			output.Info(fmt.Sprintf("Plan: %d outer x %d inner iterations from %s",
				cfg.Loops.Outer, cfg.Loops.Inner, cfg.Template))

			writes, err := planWrites(gen, cfg, plan)
			if err != nil {
				return fail(err)
			}

			if diff {
				for _, w := range writes {
					if err := showDiff(w.op); err != nil {
						return fail(err)
					}
				}
				return nil
			}

			tx := generator.NewTransaction()
			defer tx.Rollback()
			for _, w := range writes {
				tx.Add(w.op)
			}

			if dryRun {
				err := generator.Execute(ctx, tx.Operations(), generator.ExecuteOptions{
					DryRun: true,
					Force:  true,
					Writer: cmd.OutOrStdout(),
				})
				if err != nil {
					return fail(err)
				}
				return nil
			}

			if err := tx.Commit(ctx); err != nil {
				return fail(oops.Wrapf(err, "run aborted, earlier files restored"))
			}
			for _, w := range writes {
				output.Step(w.op.Description())
			}
			output.Success(fmt.Sprintf("Wrote %d properties files", tx.Len()))
			log.Info("run written", logger.F("files", tx.Len()))

			if !runHooks {
				return nil
			}
			return runIterationHooks(cmd, cfg, runID, writes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff against existing files without writing")
	cmd.Flags().BoolVar(&runHooks, "exec", false, "Run the hook command for each iteration after writing")

	return cmd
}

func planWrites(gen *propgen.Generator, cfg *config.Config, plan []propgen.Iteration) ([]plannedWrite, error) {
	renderer := generator.NewRenderer()
	seen := make(map[string]propgen.Iteration, len(plan))

	writes := make([]plannedWrite, 0, len(plan))
	for _, it := range plan {
		path, err := renderer.RenderPath(cfg.Output, pathData{Outer: it.Outer, Inner: it.Inner, BasePath: cfg.BasePath})
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[path]; dup {
			return nil, oops.Errorf("output pattern gives %s for both %s and %s", path, prev, it)
		}
		seen[path] = it

		op, err := gen.CreateOp(path, it.Outer, it.Inner)
		if err != nil {
			return nil, err
		}
		writes = append(writes, plannedWrite{it: it, op: op})
	}
	return writes, nil
}

func runIterationHooks(cmd *cobra.Command, cfg *config.Config, runID string, writes []plannedWrite) error {
	if cfg.Hook.Command == "" {
		return fail(oops.Errorf("--exec needs hook.command in the config"))
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	renderer := generator.NewRenderer()
	executor := exec.NewExecutor(&exec.Options{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})

	for _, w := range writes {
		data := pathData{Outer: w.it.Outer, Inner: w.it.Inner, BasePath: cfg.BasePath}

		hook := exec.Hook{Command: cfg.Hook.Command, Dir: cfg.Hook.Dir}
		for _, arg := range cfg.Hook.Args {
			rendered, err := renderer.RenderString("hook argument", arg, data)
			if err != nil {
				return fail(err)
			}
			hook.Args = append(hook.Args, string(rendered))
		}

		run := exec.HookRun{
			Outer:      w.it.Outer,
			Inner:      w.it.Inner,
			Properties: w.op.Path,
			BasePath:   cfg.BasePath,
			RunID:      runID,
		}
		output.Verbose("Running " + hook.String() + " for " + w.it.String())
		if err := executor.RunHook(cmd.Context(), hook, run, !verbose); err != nil {
			return fail(oops.Wrapf(err, "hook failed at %s", w.it))
		}
	}

	output.Success(fmt.Sprintf("Ran %s for %d iterations", cfg.Hook.Command, len(writes)))
	return nil
}
