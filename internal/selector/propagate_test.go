package selector

import (
	"testing"

	"modelswitch/pkg/types"
)

func TestPropagateAll(t *testing.T) {
	vars := Propagate("qwen3:14b", []types.Frontend{types.FrontendAll})
	want := []string{"AGENT_MODEL", "AIDER_MODEL", "GOOSE_MODEL", "OPENCODE_MODEL", "OPENHANDS_MODEL"}
	if len(vars) != len(want) {
		t.Fatalf("vars = %v", vars)
	}
	for _, k := range want {
		if vars[k] != "qwen3:14b" {
			t.Fatalf("%s = %q", k, vars[k])
		}
	}
}

func TestPropagateSubset(t *testing.T) {
	vars := Propagate("m", []types.Frontend{types.FrontendGoose, types.FrontendOpenHands})
	if len(vars) != 2 || vars["GOOSE_MODEL"] != "m" || vars["OPENHANDS_MODEL"] != "m" {
		t.Fatalf("vars = %v", vars)
	}
	for _, k := range []string{"AIDER_MODEL", "OPENCODE_MODEL", GenericVar} {
		if _, ok := vars[k]; ok {
			t.Fatalf("%s must stay untouched", k)
		}
	}
}

func TestPropagateEverySingleTarget(t *testing.T) {
	for _, f := range types.Frontends {
		name, ok := VarFor(f)
		if !ok {
			t.Fatalf("no variable for %s", f)
		}
		vars := Propagate("x", []types.Frontend{f})
		if len(vars) != 1 || vars[name] != "x" {
			t.Fatalf("%s: vars = %v", f, vars)
		}
	}
	if _, ok := VarFor(types.FrontendAll); ok {
		t.Fatalf("all has no variable of its own")
	}
}

func TestVarNamesSorted(t *testing.T) {
	got := VarNames()
	want := []string{"AGENT_MODEL", "AIDER_MODEL", "GOOSE_MODEL", "OPENCODE_MODEL", "OPENHANDS_MODEL"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
