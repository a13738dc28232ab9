package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/multiwin/internal/app"
	"github.com/1broseidon/multiwin/internal/config"
	"github.com/1broseidon/multiwin/internal/host"
	"github.com/1broseidon/multiwin/internal/host/headless"
	"github.com/1broseidon/multiwin/internal/host/term"
	"github.com/1broseidon/multiwin/internal/host/x11"
	"github.com/1broseidon/multiwin/internal/ipc"
	"github.com/1broseidon/multiwin/internal/runtimepath"
)

type runOptions struct {
	configPath string
	host       string
	open       string
	dynamic    bool
	display    string
	noIPC      bool
}

func runRun(args []string) int {
	var opts runOptions
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&opts.configPath, "config", "", "Config file path (default: ~/.config/multiwin/config.yaml)")
	fs.StringVar(&opts.host, "host", "", "Window host: term, x11 or headless (default from config)")
	fs.StringVar(&opts.open, "open", "", "Comma-separated window kinds to open at startup")
	fs.BoolVar(&opts.dynamic, "dynamic", false, "Use the dynamic registry instead of the generated union")
	fs.StringVar(&opts.display, "display", "", "X11 display (default $DISPLAY)")
	fs.BoolVar(&opts.noIPC, "no-ipc", false, "Do not listen on the control socket")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: multiwin run [--config PATH] [--host term|x11|headless] [--open kind,...] [--dynamic] [--display D] [--no-ipc]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the application. It exits when its last window closes.")
		fmt.Fprintln(os.Stderr, "Window kinds: "+strings.Join(app.Kinds(), ", "))
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadRunConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// The terminal host owns the screen; logs go to the configured file only.
	var fallback io.Writer = os.Stderr
	if cfg.Host == config.HostTerm {
		fallback = io.Discard
	}
	logger, closer, err := cfg.Logging.NewLogger(fallback)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Host == config.HostTerm {
		err = runTerm(ctx, cfg, opts.dynamic, logger)
	} else {
		err = runNative(ctx, cfg, opts.dynamic, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("multiwin: %v", err)
		return 1
	}
	return 0
}

// loadRunConfig loads the config file and applies command-line overrides.
func loadRunConfig(opts runOptions) (*config.Config, error) {
	var (
		res *config.LoadResult
		err error
	)
	if opts.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(opts.configPath)
	}
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	if err := cfg.ValidateKinds(app.Kinds()); err != nil {
		return nil, res.AttachSource(err)
	}

	if opts.host != "" {
		cfg.Host = config.HostKind(opts.host)
	}
	if opts.open != "" {
		cfg.Open = splitList(opts.open)
	}
	if opts.display != "" {
		cfg.Display = opts.display
	}
	if opts.noIPC {
		cfg.IPC.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateKinds(app.Kinds()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// startIPC serves ctrl on the configured socket. The returned stop function
// is never nil.
func startIPC(cfg *config.Config, ctrl ipc.Controller, logger *slog.Logger) (func(), error) {
	if !cfg.IPC.Enabled {
		return func() {}, nil
	}
	path, err := runtimepath.SocketPath(cfg.IPC.Socket)
	if err != nil {
		return nil, err
	}
	server, err := ipc.NewServer(ipc.ServerConfig{
		SocketPath: path,
		Controller: ctrl,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("failed to start IPC server: %w", err)
	}
	logger.Info("control socket listening", "path", path)
	return server.Stop, nil
}

// runNative runs the application on the x11 or headless host.
func runNative(ctx context.Context, cfg *config.Config, dynamic bool, logger *slog.Logger) error {
	var (
		h         host.Host
		eventLoop func(context.Context)
	)
	switch cfg.Host {
	case config.HostHeadless:
		hh := headless.New(logger)
		hh.OpenMain(app.MainSettings(cfg))
		h = hh
	case config.HostX11:
		xh, err := x11.Connect(x11.Config{
			Display: cfg.Display,
			Main:    app.MainSettings(cfg),
			Title:   "multiwin",
			Theme:   cfg.ResolvedTheme(),
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		h = xh
		eventLoop = xh.Run
	default:
		return fmt.Errorf("unsupported host %q", cfg.Host)
	}
	defer h.Close()

	session := app.NewSession(app.SessionConfig{
		Config:  cfg,
		Handles: h,
		Dynamic: dynamic,
		Logger:  logger,
	})
	runner := app.NewRunner(app.RunnerConfig{Session: session, Host: h, Logger: logger})

	stopIPC, err := startIPC(cfg, runner, logger)
	if err != nil {
		return err
	}
	defer stopIPC()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if eventLoop != nil {
		go eventLoop(runCtx)
	}
	go func() {
		if err := runner.Open(runCtx, cfg.Open...); err != nil && !errors.Is(err, app.ErrStopped) {
			logger.Error("failed to open startup windows", "err", err)
		}
	}()

	logger.Info("multiwin started", "host", cfg.Host, "dynamic", dynamic)
	return runner.Run(runCtx)
}

// runTerm runs the application as a full-screen terminal program.
func runTerm(ctx context.Context, cfg *config.Config, dynamic bool, logger *slog.Logger) error {
	session := app.NewSession(app.SessionConfig{
		Config:  cfg,
		Handles: new(term.Handles),
		Dynamic: dynamic,
		Logger:  logger,
	})
	program, err := term.NewProgram(session, term.Options{Logger: logger})
	if err != nil {
		return err
	}
	ctrl := app.NewTermController(session, program)

	stopIPC, err := startIPC(cfg, ctrl, logger)
	if err != nil {
		return err
	}
	defer stopIPC()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for _, kind := range cfg.Open {
			if _, err := ctrl.Spawn(runCtx, kind); err != nil {
				logger.Error("failed to open startup window", "kind", kind, "err", err)
				return
			}
		}
	}()
	return program.Run(runCtx)
}
