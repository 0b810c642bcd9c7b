package selector

import "modelswitch/pkg/types"

// Separator ends target recognition explicitly; it is not part of the passthrough.
const Separator = "--"

// ParseArgs consumes leading frontend tokens and returns the rest verbatim as
// the passthrough command. Recognition stops at the first unknown token or at
// Separator. No targets means all.
func ParseArgs(args []string) (targets []types.Frontend, passthrough []string) {
	seen := make(map[types.Frontend]bool)
	i := 0
	for ; i < len(args); i++ {
		if args[i] == Separator {
			i++
			break
		}
		f, ok := types.ParseFrontend(args[i])
		if !ok {
			break
		}
		if !seen[f] {
			seen[f] = true
			targets = append(targets, f)
		}
	}
	if i < len(args) {
		passthrough = append([]string(nil), args[i:]...)
	}
	if len(targets) == 0 {
		targets = []types.Frontend{types.FrontendAll}
	}
	return targets, passthrough
}
