package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill a record interactively and print the values as JSON",
		Long: `fill prompts for every field of the selected record on stderr and prints
the collected values to stdout in the same shape the browser runtime posts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := a.pipeline(a.promptDriver)
			if err != nil {
				return err
			}
			req.Renderer = tui.Name

			out, err := orch.Generate(contextOf(cmd), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
