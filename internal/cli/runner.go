package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/auth"
	"github.com/Makepad-fr/orderup/internal/config"
	"github.com/Makepad-fr/orderup/internal/logging"
	"github.com/Makepad-fr/orderup/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carry what main wires in; tests swap the streams.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// usageError marks bad invocations, which exit with ExitUsage.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{fmt.Sprintf(format, a...)}
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout != nil {
		ui.Stdout = opt.Stdout
	}
	if opt.Stderr != nil {
		ui.Stderr = opt.Stderr
	}

	st := &state{stdin: opt.Stdin}
	defer st.close()

	root := newRootCmd(st)
	root.SetArgs(args)
	root.SetOut(ui.Stdout)
	root.SetErr(ui.Stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(err.Error())
	var ue *usageError
	if errors.As(err, &ue) || isCobraUsage(err) {
		ui.Hint("Run `orderup --help` for usage.")
		return ExitUsage
	}
	if api.StatusOf(err) == 401 {
		ui.Hint("Hint: run `orderup auth login` first")
	}
	return ExitError
}

// isCobraUsage recognises cobra's own flag and argument errors.
func isCobraUsage(err error) bool {
	msg := err.Error()
	for _, p := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "accepts ", "requires at least", "invalid argument", "flag needs an argument"} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// state is built once per invocation by the root command.
type state struct {
	stdin io.Reader

	envFlag    string
	configFlag string
	themeFlag  string
	verbose    bool
	noColor    bool

	// interactive runs log to the log file instead of stderr.
	interactive bool

	home    string
	cfgPath string
	cfg     *config.Config
	logger  *zap.Logger
	store   *auth.Store
	client  *api.Client
}

func (s *state) setup() error {
	home, err := config.DefaultHome()
	if err != nil {
		return err
	}
	s.home = home
	s.cfgPath = s.configFlag
	if s.cfgPath == "" {
		s.cfgPath = config.Path(home)
	}
	if s.cfg, err = config.Load(s.cfgPath, home); err != nil {
		return err
	}
	if s.envFlag != "" {
		s.cfg.Environment = s.envFlag
	}
	theme := s.cfg.Theme
	if s.themeFlag != "" {
		theme = s.themeFlag
	}
	ui.SetTheme(theme)
	if s.noColor {
		ui.SetColorForcing(false, true)
	}

	logOpt := logging.Options{Level: s.cfg.Logging.Level, Verbose: s.verbose, Out: ui.Stderr}
	if s.interactive {
		logOpt.File = s.cfg.LogFile()
	}
	if s.logger, err = logging.New(logOpt); err != nil {
		return err
	}
	s.logger = s.logger.With(zap.String("env", string(config.ResolveEnvironment(s.cfg.Environment))))
	s.store = auth.NewStore(home)
	s.client = api.NewFromConfig(s.cfg, s.store, s.logger)
	return nil
}

func (s *state) close() {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

// runE adapts a handler that needs the wired state.
func (s *state) runE(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return fn(cmd.Context(), args)
	}
}
