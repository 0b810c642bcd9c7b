package selector

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"modelswitch/internal/catalog"
	"modelswitch/internal/metrics"
	"modelswitch/pkg/types"
)

// Selector shows a catalog, reads one choice and propagates it.
// Its behavior does not depend on where the result is delivered.
type Selector struct {
	in      io.Reader
	out     io.Writer
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// New returns a Selector that prompts on out and reads answers from in.
func New(in io.Reader, out io.Writer, log zerolog.Logger, rec *metrics.Recorder) *Selector {
	return &Selector{in: in, out: out, log: log, metrics: rec}
}

// Select renders models sorted by name, prompts for one and returns the
// variables to set for targets. Nothing is assigned unless a choice is made.
func (s *Selector) Select(models []types.Model, targets []types.Frontend, passthrough []string) (types.SelectionResult, error) {
	if len(models) == 0 {
		return types.SelectionResult{}, catalog.ErrEmptyCatalog
	}
	list := append([]types.Model(nil), models...)
	catalog.Sort(list)

	fmt.Fprintln(s.out, "Available models:")
	if err := catalog.Render(s.out, list); err != nil {
		return types.SelectionResult{}, fmt.Errorf("render catalog: %w", err)
	}
	n, err := Prompt(s.in, s.out, len(list), s.metrics)
	if err != nil {
		return types.SelectionResult{}, err
	}
	model := list[n-1].Name
	vars := Propagate(model, targets)
	s.metrics.Selected(targets)
	s.log.Info().Str("model", model).Interface("targets", targets).Int("vars", len(vars)).Msg("model selected")

	return types.SelectionResult{
		Model:       model,
		Targets:     append([]types.Frontend(nil), targets...),
		Vars:        vars,
		Passthrough: passthrough,
	}, nil
}
