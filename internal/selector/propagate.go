package selector

import (
	"sort"

	"modelswitch/pkg/types"
)

// GenericVar is the fallback variable, set only for the all target.
const GenericVar = "AGENT_MODEL"

var frontendVars = map[types.Frontend]string{
	types.FrontendAider:     "AIDER_MODEL",
	types.FrontendGoose:     "GOOSE_MODEL",
	types.FrontendOpenCode:  "OPENCODE_MODEL",
	types.FrontendOpenHands: "OPENHANDS_MODEL",
}

// VarFor returns the variable a concrete frontend reads its model from.
func VarFor(f types.Frontend) (string, bool) {
	v, ok := frontendVars[f]
	return v, ok
}

// VarNames lists every variable modelswitch can set, sorted.
func VarNames() []string {
	names := []string{GenericVar}
	for _, v := range frontendVars {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// Propagate assigns model to the variables of the given targets. Variables of
// targets not named are absent from the result.
func Propagate(model string, targets []types.Frontend) map[string]string {
	vars := make(map[string]string)
	for _, t := range targets {
		if t == types.FrontendAll {
			for _, f := range types.Frontends {
				vars[frontendVars[f]] = model
			}
			vars[GenericVar] = model
			continue
		}
		if v, ok := frontendVars[t]; ok {
			vars[v] = model
		}
	}
	return vars
}
