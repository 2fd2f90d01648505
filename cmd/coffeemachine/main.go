// Command coffeemachine runs an interactive coffee machine session on
// stdin/stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/coffeemachine"
	"github.com/comalice/coffeemachine/internal/config"
	"github.com/comalice/coffeemachine/internal/logging"
	"github.com/comalice/coffeemachine/internal/production"
	"github.com/comalice/coffeemachine/internal/session"
)

// app holds the flag values and what PersistentPreRunE builds from them.
type app struct {
	configPath    string
	verbose       bool
	journalPath   string
	journalFormat string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "coffeemachine",
		Short: "Coffee machine simulator",
		Long: `Runs one coffee machine session. Commands are read line by line:

  buy        choose a drink (1 - espresso, 2 - latte, 3 - cappuccino, back)
  fill       add water, milk, coffee beans and disposable cups
  take       withdraw all money
  remaining  print the current stock
  exit       switch the machine off`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runSession,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.journalPath, "journal", "", "Append a transition journal to this file")
	flags.StringVar(&a.journalFormat, "journal-format", "", "Journal format (json, yaml)")

	rootCmd.AddCommand(newGraphCmd(a), newRecipesCmd())
	return rootCmd
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if a.journalPath != "" {
		cfg.Journal.Path = a.journalPath
	}
	if a.journalFormat != "" {
		cfg.Journal.Format = a.journalFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) runSession(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sessionID := uuid.New()
	meta := production.Metadata{MachineID: a.cfg.Machine.ID, SessionID: sessionID}
	opts := []coffeemachine.Option{
		coffeemachine.WithInventory(a.cfg.Machine.Inventory),
		coffeemachine.WithLogger(a.logger),
		coffeemachine.WithObserver(production.NewLogPublisher(a.logger, meta)),
	}

	if a.cfg.Journal.Path != "" {
		f, openErr := os.OpenFile(a.cfg.Journal.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			return fmt.Errorf("open journal: %w", openErr)
		}
		defer f.Close()

		journal, jerr := production.NewJournal(f, production.JournalFormat(a.cfg.Journal.Format), meta)
		if jerr != nil {
			return jerr
		}
		defer func() {
			if cerr := journal.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		opts = append(opts, coffeemachine.WithObserver(journal))
	}

	m, err := coffeemachine.New(opts...)
	if err != nil {
		return err
	}

	loop := session.NewLoop(m,
		session.NewScannerSource(cmd.InOrStdin()),
		session.NewWriterSink(cmd.OutOrStdout()),
		session.WithLogger(a.logger.With(zap.String("machine", a.cfg.Machine.ID))),
		session.WithID(sessionID),
	)
	switch err := loop.Run(ctx); {
	case err == nil, errors.Is(err, session.ErrInputClosed):
		return nil
	case errors.Is(err, context.Canceled):
		a.logger.Warn("session interrupted", zap.Int("lines", loop.Lines()))
		return nil
	default:
		return err
	}
}

func newGraphCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the state graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := &production.DefaultVisualizer{}
			g := production.NewGraph(coffeemachine.Ready)

			var data []byte
			var err error
			switch format {
			case "dot":
				data = []byte(v.ExportDOT(g))
			case "json":
				data, err = v.ExportJSON(g)
			case "yaml":
				data, err = v.ExportYAML(g)
			default:
				return fmt.Errorf("unknown graph format %q", format)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("graph exported", zap.String("format", format), zap.Int("bytes", len(data)))
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Output format (dot, json, yaml)")
	return cmd
}

func newRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the drinks on the buy menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SELECTOR\tNAME\tWATER\tMILK\tBEANS\tPRICE")
			for i, r := range coffeemachine.Recipes() {
				fmt.Fprintf(w, "%s\t%s\t%d ml\t%d ml\t%d g\t$%d\n",
					coffeemachine.Selectors()[i], r.Name, r.Water, r.Milk, r.Beans, r.Price)
			}
			return w.Flush()
		},
	}
}
