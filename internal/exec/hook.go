package exec

import (
	"context"
	"strings"
)

// Environment variables set for every hook invocation
const (
	EnvOuter      = "WREN_OUTER"
	EnvInner      = "WREN_INNER"
	EnvProperties = "WREN_PROPERTIES"
	EnvBasePath   = "WREN_BASEPATH"
	EnvRunID      = "WREN_RUN_ID"
)

// Hook is a command run once per iteration after its properties file is
// written.
type Hook struct {
	Command string
	Args    []string
	Dir     string
}

// HookRun identifies the iteration a hook runs for
type HookRun struct {
	Outer      string
	Inner      string
	Properties string // Path of the generated file
	BasePath   string
	RunID      string // Shared by every hook of one wren run
}

// Env returns the variables describing the run
func (r HookRun) Env() []string {
	return []string{
		EnvOuter + "=" + r.Outer,
		EnvInner + "=" + r.Inner,
		EnvProperties + "=" + r.Properties,
		EnvBasePath + "=" + r.BasePath,
		EnvRunID + "=" + r.RunID,
	}
}

// Label returns the prefix used for the hook's output lines
func (r HookRun) Label() string {
	return "[outer" + r.Outer + "/inner" + r.Inner + "] "
}

// String returns the command line for display
func (h Hook) String() string {
	return strings.Join(append([]string{h.Command}, h.Args...), " ")
}

// RunHook runs hook for one iteration. Output lines are prefixed with the
// iteration label. With withSpinner set, output is replaced by a spinner.
func (e *Executor) RunHook(ctx context.Context, hook Hook, run HookRun, withSpinner bool) error {
	x := e.With(hook.Dir, run.Env()...)

	if withSpinner {
		return x.RunWithSpinner(ctx, run.Label()+hook.String(), hook.Command, hook.Args...)
	}

	stdout := NewPrefixWriter(e.stdout, run.Label())
	stderr := NewPrefixWriter(e.stderr, run.Label())
	x.stdout = stdout
	x.stderr = stderr

	err := x.Run(ctx, hook.Command, hook.Args...)
	_ = stdout.Flush()
	_ = stderr.Flush()
	return err
}
