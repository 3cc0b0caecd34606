package commands

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/simonhull/firebird-suite/wren/internal/propgen"
)

// InspectCmd shows how a template's keys are classified and resolved
func InspectCmd() *cobra.Command {
	var configPath, templatePath, basePath, outer, inner string
	var sets []string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show key roles, policies and resolved values",
		Long: `Show how wren treats each template key.

Without --template, the template, base path, overrides and policies come from
wren.yml. With --template, flags are used and the default policies apply.

Examples:
  wren inspect
  wren inspect --outer 1 --inner 2
  wren inspect -t model.properties -b /data/run/ --set max.hh.id=200000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				gen *propgen.Generator
				log logger.Logger
				err error
			)

			if templatePath != "" {
				if log, err = commandLogger(cmd, ""); err != nil {
					return err
				}
				overrides, err := parseSets(sets)
				if err != nil {
					return fail(err)
				}
				overrides[propgen.BasePathKey] = basePath
				gen, err = propgen.New(templatePath, overrides, propgen.WithLogger(log))
				if err != nil {
					return fail(err)
				}
			} else {
				cfg, err := config.Load(configPath)
				if err != nil {
					return fail(err)
				}
				if err := cfg.Validate(); err != nil {
					return fail(oops.Wrapf(err, "invalid %s", configPath))
				}
				if log, err = commandLogger(cmd, cfg.Log.Level); err != nil {
					return err
				}
				gen, err = propgen.New(cfg.Template, cfg.OverrideMap(),
					propgen.WithPolicies(cfg.Policies()),
					propgen.WithLogger(log),
				)
				if err != nil {
					return fail(err)
				}
			}

			params, err := gen.Resolve(outer, inner)
			if err != nil {
				return fail(err)
			}

			output.Header("Template " + gen.Template().Path)
			output.Info(fmt.Sprintf("base path %q, %d keys", gen.BasePath(), params.Len()))

			roles := keyRoles(gen)
			rows := make([][2]string, 0, params.Len())
			for _, key := range gen.Params().Keys() {
				rows = append(rows, [2]string{key, fmt.Sprintf("%-5s %s", roles[key], gen.Policy(key))})
			}
			output.Header("Keys")
			output.KeyValues(rows)

			resolved := make([][2]string, 0, params.Len())
			for _, e := range params.Entries() {
				value := e.Value
				if value == "" {
					value = "(empty)"
				}
				resolved = append(resolved, [2]string{e.Key, value})
			}
			output.Header(fmt.Sprintf("Resolved for outer%s/inner%s", outer, inner))
			output.KeyValues(resolved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Config file, used when --template is not set")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template properties file")
	cmd.Flags().StringVarP(&basePath, "basepath", "b", "", "Base path substituted for BASEPATH")
	cmd.Flags().StringVar(&outer, "outer", "0", "Outer loop index")
	cmd.Flags().StringVar(&inner, "inner", "0", "Inner loop index")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a template value, key=value (repeatable)")

	return cmd
}

// keyRoles labels each key root, loop or plain
func keyRoles(gen *propgen.Generator) map[string]string {
	roles := make(map[string]string)
	for _, k := range gen.Template().Defaults.Keys() {
		roles[k] = "plain"
	}
	for _, k := range gen.RootPathKeys() {
		roles[k] = "root"
	}
	for _, k := range gen.LoopPathKeys() {
		roles[k] = "loop"
	}
	return roles
}
