package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "List the records a schema document declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := a.pipeline(nil)
			if err != nil {
				return err
			}
			catalog, err := orch.Catalog(contextOf(cmd), req)
			if err != nil {
				return err
			}
			for _, name := range catalog.Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
