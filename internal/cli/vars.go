package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modelswitch/internal/selector"
	"modelswitch/pkg/types"
)

func newVarsCmd(streams IO) *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "Show which variable each frontend target sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(streams.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TARGET\tVARIABLE\tCURRENT")
			for _, f := range types.Frontends {
				v, _ := selector.VarFor(f)
				fmt.Fprintf(w, "%s\t%s\t%s\n", f, v, current(streams, v))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", types.FrontendAll, selector.GenericVar+" (+ all above)", current(streams, selector.GenericVar))
			return w.Flush()
		},
	}
}

func current(streams IO, name string) string {
	if v := streams.Getenv(name); v != "" {
		return v
	}
	return "-"
}
