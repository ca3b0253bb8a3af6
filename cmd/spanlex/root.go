package main

import (
	"fmt"
	"os"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paul-lalonde/edstyle/config"
	"github.com/paul-lalonde/edstyle/document"
	"github.com/paul-lalonde/edstyle/internal/logger"
	"github.com/paul-lalonde/edstyle/lang"
)

var version = "dev"

// app is the state shared by all subcommands, set up before any runs.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
	reg *lang.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "spanlex",
		Short:         "Style source files into highlight spans",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/edstyle/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"dump the configuration and log at debug level")

	root.AddCommand(
		newSpansCmd(a),
		newLinesCmd(a),
		newCheckCmd(a),
		newCatCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
		fmt.Fprintln(cmd.ErrOrStderr(), litter.Sdump(cfg))
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	reg, err := lang.NewRegistry(lang.WithFaultHook(logger.FaultHook(log)))
	if err != nil {
		return err
	}
	if err := cfg.ApplyExtensions(reg); err != nil {
		return err
	}
	a.cfg, a.log, a.reg = cfg, log, reg
	cmd.SetContext(logger.NewContext(cmd.Context(), log))
	return nil
}

// language picks the language named by the flag value, or the one for
// path's extension.
func (a *app) language(name, path string) (lang.Language, error) {
	if name != "" {
		return a.reg.Lookup(name)
	}
	return a.reg.ForFile(path)
}

// load reads path into a document styled for its language.
func (a *app) load(langName, path string) (*document.Document, lang.Language, error) {
	l, err := a.language(langName, path)
	if err != nil {
		return nil, l, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, l, err
	}
	doc := document.New(l.Highlighter,
		document.WithLogger(a.log.With(zap.String("file", path))),
		document.WithTabWidth(a.cfg.TabWidth))
	doc.SetText(string(data))
	return doc, l, nil
}
