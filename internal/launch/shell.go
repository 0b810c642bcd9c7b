package launch

import (
	"fmt"
	"strings"

	"modelswitch/pkg/types"
)

const shellMeta = " \t\n\"'\\$`!#&|;(){}[]<>?*~"

// quote wraps s in single quotes for the given shell.
func quote(sh types.Shell, s string) string {
	if sh == types.ShellFish {
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(s) + "'"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// join quotes only the arguments that need it.
func join(sh types.Shell, args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, shellMeta) {
			quoted[i] = quote(sh, a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}

// Statements renders vars, and an optional final exec of passthrough, in the
// syntax of sh. One statement per line, variables in name order.
func Statements(sh types.Shell, vars map[string]string, passthrough []string) string {
	var b strings.Builder
	for _, k := range sortedKeys(vars) {
		if sh == types.ShellFish {
			fmt.Fprintf(&b, "set -gx %s %s;\n", k, quote(sh, vars[k]))
		} else {
			fmt.Fprintf(&b, "export %s=%s\n", k, quote(sh, vars[k]))
		}
	}
	if len(passthrough) > 0 {
		fmt.Fprintf(&b, "exec %s\n", join(sh, passthrough))
	}
	return b.String()
}
