package launch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"modelswitch/pkg/types"
)

// execFunc replaces the current process image. Tests override it to capture
// the call instead.
var execFunc = syscall.Exec

var lookPath = exec.LookPath

// ExitError carries the process exit status for a failed hand-off.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// Launcher delivers a SelectionResult according to its Mode.
type Launcher struct {
	Mode    types.Mode
	Shell   types.Shell
	Program string
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string
	// Exec replaces the process; nil means syscall.Exec.
	Exec func(path string, argv []string, env []string) error
	Log  zerolog.Logger
}

// Deliver finishes an invocation. In child mode it execs the passthrough
// command, or prints a confirmation and a reminder. In export mode it writes
// shell statements to Stdout and the confirmation to Stderr.
func (l *Launcher) Deliver(res types.SelectionResult) error {
	if l.Mode == types.ModeExport {
		fmt.Fprintln(l.Stderr, Confirmation(res))
		_, err := io.WriteString(l.Stdout, Statements(l.Shell, res.Vars, res.Passthrough))
		return err
	}
	if len(res.Passthrough) > 0 {
		return l.exec(res)
	}
	fmt.Fprintln(l.Stdout, Confirmation(res))
	for _, k := range sortedKeys(res.Vars) {
		fmt.Fprintf(l.Stdout, "  %s=%s\n", k, res.Vars[k])
	}
	fmt.Fprintln(l.Stdout)
	fmt.Fprintln(l.Stdout, "These variables are not set in your shell. To set them, run:")
	fmt.Fprintf(l.Stdout, "  %s\n", Reminder(l.program(), l.Shell, res.Targets))
	return nil
}

func (l *Launcher) exec(res types.SelectionResult) error {
	argv := res.Passthrough
	path, err := lookPath(argv[0])
	if err != nil {
		return &ExitError{Code: 127, Err: fmt.Errorf("command %q not found: %w", argv[0], err)}
	}
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	env := MergeEnv(environ(), res.Vars)
	l.Log.Info().Str("path", path).Strs("argv", argv).Msg("handing off to passthrough command")
	run := l.Exec
	if run == nil {
		run = execFunc
	}
	if err := run(path, argv, env); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("exec %s: %w", path, err)}
	}
	return nil
}

func (l *Launcher) program() string {
	if l.Program != "" {
		return l.Program
	}
	return "modelswitch"
}

// Confirmation is the one-line summary of a selection.
func Confirmation(res types.SelectionResult) string {
	names := make([]string, len(res.Targets))
	for i, t := range res.Targets {
		names[i] = string(t)
	}
	return fmt.Sprintf("Selected %s for %s", res.Model, strings.Join(names, ", "))
}

// Reminder shows how to run the same selection so that it reaches the caller's shell.
func Reminder(program string, sh types.Shell, targets []types.Frontend) string {
	args := []string{program, "--export"}
	if sh == types.ShellFish {
		args = append(args, "--shell", "fish")
	}
	for _, t := range targets {
		args = append(args, string(t))
	}
	if sh == types.ShellFish {
		return strings.Join(args, " ") + " | source"
	}
	return `eval "$(` + strings.Join(args, " ") + `)"`
}
