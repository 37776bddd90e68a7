package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/validation"
)

const (
	lintOutputText = "text"
	lintOutputJSON = "json"
)

func newLintCmd(a *app) *cobra.Command {
	var output string
	lintCmd := &cobra.Command{
		Use:   "lint",
		Short: "Report fields that would only render as placeholders or error markers",
		Long: `lint walks every field of the selected record, or of every record in the
document when --record is empty, and reports non-scalar map keys, unsupported
map values, non-scalar list elements, unclassifiable types and cycles. It
exits non-zero when anything is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != lintOutputText && output != lintOutputJSON {
				return fmt.Errorf("unknown output %q: use %s or %s", output, lintOutputText, lintOutputJSON)
			}
			orch, req, err := a.pipeline(nil)
			if err != nil {
				return err
			}
			catalog, err := orch.Catalog(contextOf(cmd), req)
			if err != nil {
				return err
			}

			names := catalog.Names()
			if req.Record != "" {
				names = []string{req.Record}
			}

			builder := a.builder()
			out := cmd.OutOrStdout()
			report := validation.SchemaValidationResult{Valid: true}
			for _, name := range names {
				result := validation.ValidateCatalog(catalog, builder, name)
				report.Issues = append(report.Issues, result.Issues...)
				if output != lintOutputText {
					continue
				}
				if result.Valid {
					fmt.Fprintf(out, "%s: ok\n", name)
				}
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "%s: %s\n", name, issue.Message)
				}
			}
			report.Valid = len(report.Issues) == 0

			if output == lintOutputJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			}
			if !report.Valid {
				return fmt.Errorf("lint: %d issue(s) found", len(report.Issues))
			}
			return nil
		},
	}
	lintCmd.Flags().StringVarP(&output, "output", "o", lintOutputText, "report format: text or json")
	return lintCmd
}
