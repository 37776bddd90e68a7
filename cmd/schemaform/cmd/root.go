package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/internal/logging"
	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
)

var longRootCmdDescription = `schemaform renders HTML forms from JSON Schema, OpenAPI and CUE
documents. It can print a form or a full page, describe how each field is
classified, lint a schema for fields that only render as markers, serve forms
with an in-memory submission store, and fill a record interactively.
`

// app carries the state shared by every subcommand once the persistent
// pre-run has resolved configuration and logging.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
	stdin   io.Reader
	// promptDriver replaces the terminal prompts of fill when set.
	promptDriver tui.PromptDriver
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "schemaform:", err)
		os.Exit(1)
	}
}

// NewRootCmd assembles the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{v: config.New(), logger: zap.NewNop(), stdin: os.Stdin})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "schemaform",
		Short:         "Render HTML forms from schema documents",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			a.stdin = cmd.InOrStdin()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is "+config.DefaultFile+")")
	flags.StringP("schema", "s", "", "schema document: a file path, an http(s) URL or - for stdin")
	flags.StringP("format", "f", "", "schema format: jsonschema, openapi or cue (detected when empty)")
	flags.StringP("record", "r", "", "record to use when the document declares several")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", logging.FormatConsole, "log encoding: console or json")
	bindFlags(a.v, flags.Lookup, map[string]string{
		"schema":     "schema",
		"format":     "format",
		"record":     "record",
		"log.level":  "log-level",
		"log.format": "log-format",
	})

	rootCmd.AddCommand(
		newRenderCmd(a),
		newInspectCmd(a),
		newLintCmd(a),
		newServeCmd(a),
		newFillCmd(a),
		newRecordsCmd(a),
	)
	return rootCmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func requireSchema(cfg config.Config) error {
	if strings.TrimSpace(cfg.Schema) == "" {
		return errors.New("no schema given: pass --schema or set schema in the config file")
	}
	return nil
}
