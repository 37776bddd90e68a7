package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/internal/server"
	"github.com/goliatone/go-schemaform/pkg/render"
)

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the document's forms and collect submissions in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, loaderOptions, err := a.source()
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(loaderOptions, nil)
			if err != nil {
				return err
			}
			form, err := a.formRenderer()
			if err != nil {
				return err
			}
			pageRenderer, err := a.pageRenderer(form, server.AssetsPath)
			if err != nil {
				return err
			}

			srv, err := server.New(
				server.WithLogger(a.logger),
				server.WithOrchestrator(orch),
				server.WithSource(src, a.cfg.Format),
				server.WithFormRenderer(form),
				server.WithPageRenderer(pageRenderer),
				server.WithRenderOptions(render.RenderOptions{FormName: a.cfg.Render.FormName}),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, a.cfg.Server.Addr, a.cfg.Server.Watch, a.cfg.Server.Debounce)
		},
	}

	flags := serveCmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.Bool("watch", false, "reload the catalog when the schema file changes")
	bindFlags(a.v, flags.Lookup, map[string]string{
		"server.addr":  "addr",
		"server.watch": "watch",
	})
	return serveCmd
}
