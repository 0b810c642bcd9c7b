package types

// Model is one entry of a backend's catalog.
type Model struct {
	// Identifier, unique within one backend's catalog.
	// example: qwen2.5-coder:14b
	Name string `json:"name" yaml:"name"`
	// Size on disk in bytes. Zero when the backend omits it.
	// example: 9001752960
	Size int64 `json:"size" yaml:"size"`
	// Optional fields; used for debug output only.
	ModifiedAt string        `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
	Digest     string        `json:"digest,omitempty" yaml:"digest,omitempty"`
	Details    *ModelDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

// Frontend names an agent tool whose model variable can be set.
type Frontend string

const (
	FrontendAider     Frontend = "aider"
	FrontendGoose     Frontend = "goose"
	FrontendOpenCode  Frontend = "opencode"
	FrontendOpenHands Frontend = "openhands"
	// FrontendAll expands to every concrete frontend plus the generic variable.
	FrontendAll Frontend = "all"
)

// Frontends lists the concrete frontends in display order.
var Frontends = []Frontend{FrontendAider, FrontendGoose, FrontendOpenCode, FrontendOpenHands}

// ParseFrontend reports whether s is exactly one of the known frontend tokens.
func ParseFrontend(s string) (Frontend, bool) {
	switch f := Frontend(s); f {
	case FrontendAider, FrontendGoose, FrontendOpenCode, FrontendOpenHands, FrontendAll:
		return f, true
	}
	return "", false
}

// Mode decides where the chosen variables end up.
type Mode string

const (
	// ModeChild scopes the variables to a passthrough child process.
	ModeChild Mode = "child"
	// ModeExport writes shell statements for the caller's shell to evaluate.
	ModeExport Mode = "export"
)

// Shell selects the syntax of export statements.
type Shell string

const (
	ShellPOSIX Shell = "posix"
	ShellFish  Shell = "fish"
)

// SelectionResult is the outcome of one invocation's selection.
type SelectionResult struct {
	Model       string
	Targets     []Frontend
	Vars        map[string]string
	Passthrough []string
}
