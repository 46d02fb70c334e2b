package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"vlcrc/internal/config"
	"vlcrc/internal/errors"
	"vlcrc/internal/log"
	"vlcrc/internal/rc"
	"vlcrc/internal/toggle"
	"vlcrc/internal/tui"
	"vlcrc/internal/tui/teaterm"
	"vlcrc/internal/watch"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	selfTestCommand = "help"
	selfTestStart   = "Attempting test connection; if we hang here, look for open conn elsewhere"
	selfTestDone    = "Test complete"
)

type rootOptions struct {
	server     string
	debug      bool
	configPath string
}

// newRootCmd builds the vlcrc command.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "vlcrc",
		Short: "Keyboard remote control for VLC",
		Long: `vlcrc drives a VLC player through its RC interface, one command per key.

Start VLC with the RC interface listening on TCP, for example
  vlc --extraintf rc --rc-host localhost:4212
and point vlcrc at it with --server.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.server, "server", "s", "", "server to connect to (hostname:port)")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "debug: show server responses")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/vlcrc/config.yaml)")
	return cmd
}

// app is everything needed to start the UI.
type app struct {
	cfg        *config.Config
	configPath string
	client     *rc.Client
	debug      bool
}

// prepare loads the config, checks the server and builds the client.
// Nothing here touches the terminal.
func prepare(opts *rootOptions) (*app, error) {
	cfg, path, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	addr, err := resolveServer(opts.server, cfg)
	if err != nil {
		return nil, err
	}
	client := rc.NewClient(addr,
		rc.WithDialTimeout(cfg.Connection.DialTimeout),
		rc.WithIOTimeout(cfg.Connection.IOTimeout),
	)
	return &app{cfg: cfg, configPath: path, client: client, debug: opts.debug || cfg.Debug}, nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadRequiredConfigFile(path)
		return cfg, path, err
	}
	path, err := config.DefaultPath()
	if err != nil {
		// No home directory: run on defaults without a file to watch.
		return config.New(), "", nil
	}
	cfg, err := config.LoadConfigFile(path)
	return cfg, path, err
}

// resolveServer picks the flag over the config file and validates it.
func resolveServer(flag string, cfg *config.Config) (rc.ServerAddress, error) {
	server := flag
	if server == "" {
		server = cfg.Server
	}
	if server == "" {
		return rc.ServerAddress{}, errors.ErrMissingServer
	}
	return rc.ParseServerAddress(server)
}

// configureLogging sends logs to the configured file. The UI owns the
// terminal, so without a file they are discarded.
func configureLogging(cfg *config.Config, debug bool) error {
	opts := []log.Option{log.WithOutput(io.Discard)}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File))
	}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	log.SetDebug(debug)
	return log.Configure(opts...)
}

// selfTest issues one harmless command so a dead or busy server is
// reported before the screen is taken over.
func selfTest(ctx context.Context, issuer tui.Issuer, stderr io.Writer) error {
	fmt.Fprintln(stderr, tui.StatusStyle.Render(selfTestStart))
	if _, err := issuer.Issue(ctx, selfTestCommand); err != nil {
		return errors.Wrap(err, "startup self-test")
	}
	fmt.Fprintln(stderr, tui.SuccessStyle.Render(selfTestDone))
	return nil
}

func runApp(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	a, err := prepare(opts)
	if err != nil {
		return err
	}
	if err := configureLogging(a.cfg, a.debug); err != nil {
		return err
	}
	defer log.Close()

	registry, err := a.cfg.Registry()
	if err != nil {
		return err
	}
	toggles, err := toggle.New(a.cfg.ToggleSpecs()...)
	if err != nil {
		return err
	}

	if err := selfTest(ctx, a.client, stderr); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.ErrNotTerminal
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dispatchOpts := []tui.Option{tui.WithDebug(a.debug)}
	if a.cfg.Watch && a.configPath != "" {
		w, err := watch.New(a.configPath)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.LogError(err, "Config watching disabled")
		} else {
			defer w.Stop()
			dispatchOpts = append(dispatchOpts, tui.WithReloads(reloadLoop(ctx, w.Changes(), loadReload)))
		}
	}

	t := teaterm.New()
	t.Start()
	log.LogWithFields(log.F("server", a.client.Address().String()), log.F("debug", a.debug)).Info("Starting UI")

	runErr := tui.NewDispatcher(t, registry, toggles, a.client, dispatchOpts...).Run(ctx)
	closeErr := t.Close()
	if runErr != nil {
		if errors.IsTerminalError(runErr) {
			return errors.Wrap(runErr, "terminal failure; screen too small?")
		}
		return runErr
	}
	return closeErr
}
