package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/page"
)

type renderOpts struct {
	out      string
	renderer string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOpts{}
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a record as an HTML form or page",
		Example: `  schemaform render --schema user.schema.json --uri /users
  schemaform render --schema api.yaml --record CreateUser --page --out form.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, req, err := a.pipeline(nil)
			if err != nil {
				return err
			}
			req.Renderer = opts.renderer
			if req.Renderer == "" && a.cfg.Render.Page {
				req.Renderer = page.Name
			}

			out, err := orch.Generate(contextOf(cmd), req)
			if err != nil {
				return err
			}

			if opts.out == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(opts.out, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.out, err)
			}
			a.logger.Info("form written", zap.String("path", opts.out), zap.Int("bytes", len(out)))
			return nil
		},
	}

	flags := renderCmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "write the output to a file instead of stdout")
	flags.StringVar(&opts.renderer, "renderer", "", "renderer name: vanilla, page or tui (overrides --page)")
	flags.Bool("page", false, "wrap the form in a full HTML page with its scripts")
	flags.String("uri", "", "submission target written to the hidden _uri control")
	flags.String("form-name", "", "name attribute of the form element")
	flags.String("title", "", "page title (defaults to the record name)")
	flags.Bool("constrained-bounds", false, "emit min and max on bounded numeric inputs")
	flags.String("enum", "select", "enumeration presentation: select or radio")
	bindFlags(a.v, flags.Lookup, map[string]string{
		"render.page":               "page",
		"render.uri":                "uri",
		"render.form_name":          "form-name",
		"render.title":              "title",
		"render.constrained_bounds": "constrained-bounds",
		"render.enum_presentation":  "enum",
	})
	return renderCmd
}
