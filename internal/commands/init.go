package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/input"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/propgen"
)

// InitCmd asks for the run settings and writes a starter wren.yml
func InitCmd() *cobra.Command {
	var configPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a wren.yml interactively",
		Long: `Create a wren.yml by answering a few questions.

Press Enter to accept the default shown in parentheses. Overrides and key
policies can be added to the file afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := input.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			if _, err := os.Stat(configPath); err == nil && !force {
				if !p.Confirm(configPath+" exists. Overwrite?", false) {
					output.Info("Left " + configPath + " unchanged")
					return nil
				}
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fail(err)
			}

			cfg := config.Default()
			cfg.Template = p.Prompt("Template file", cfg.Template)
			cfg.BasePath = p.Prompt("Base path", cfg.BasePath)
			cfg.Output = p.Prompt("Output path pattern", cfg.Output)
			cfg.Loops.Outer = p.PromptInt("Outer iterations", cfg.Loops.Outer)
			cfg.Loops.Inner = p.PromptInt("Inner iterations", cfg.Loops.Inner)
			cfg.Hook.Command = p.Prompt("Hook command run per iteration (empty for none)", "")

			describeTemplate(cfg.Template)

			if err := config.Save(configPath, cfg); err != nil {
				return fail(err)
			}

			output.Success("Created " + configPath)
			if cfg.BasePath == "" {
				output.Warn("basepath is empty; set it in " + configPath + " or with WREN_BASEPATH")
			}
			output.Info("Next steps:")
			output.Step("wren inspect")
			output.Step("wren run --dry-run")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Config file to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config without asking")

	return cmd
}

// describeTemplate reports the template's loop keys, or warns when it cannot
// be read yet.
func describeTemplate(path string) {
	tmpl, err := propgen.LoadTemplate(path)
	if err != nil {
		output.Warn(err.Error())
		return
	}
	c := propgen.ClassifyKeys(tmpl.Defaults)
	output.Verbose(fmt.Sprintf("%s has %d keys", path, tmpl.Defaults.Len()))
	if len(c.LoopPathKeys) > 0 {
		output.Info("Loop keys: " + strings.Join(trimmedKeys(c.LoopPathKeys), ", "))
	}
}

func trimmedKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = strings.TrimSpace(k)
	}
	return out
}
