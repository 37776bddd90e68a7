package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/model"
)

var inspectHeader = []string{"field", "category", "inner", "required", "default", "placeholder"}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print how every field of a record is classified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := a.pipeline(nil)
			if err != nil {
				return err
			}
			record, err := orch.Record(contextOf(cmd), req)
			if err != nil {
				return err
			}

			var rows [][]string
			err = a.builder().Walk(record, func(desc model.Descriptor, _ int) error {
				rows = append(rows, descriptorRow(desc))
				return nil
			})
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader(inspectHeader)
			table.SetAutoWrapText(false)
			table.AppendBulk(rows)
			table.Render()
			return nil
		},
	}
}

func descriptorRow(desc model.Descriptor) []string {
	attrs := desc.Attributes()
	def := ""
	if value, ok := attrs.Default(); ok {
		def = fmt.Sprint(value)
	}
	placeholder, _ := attrs.Placeholder()
	return []string{
		desc.QualifiedName(),
		desc.Category().String(),
		innerSummary(desc),
		fmt.Sprint(attrs.Required()),
		def,
		placeholder,
	}
}

func innerSummary(desc model.Descriptor) string {
	if elem, ok := desc.Elem(); ok {
		return elem.Name
	}
	if m, ok := desc.Map(); ok {
		return m.Key.Name + " -> " + m.Value.Name
	}
	if alts, ok := desc.Alternatives(); ok {
		names := make([]string, 0, len(alts.Branches))
		for _, branch := range alts.Branches {
			names = append(names, branch.Name)
		}
		return strings.Join(names, " | ")
	}
	if rec, ok := desc.Record(); ok {
		return rec.Name()
	}
	return ""
}
