package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/orderup/internal/config"
	"github.com/Makepad-fr/orderup/internal/ui"
)

func newConfigCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE:  st.runE(st.showConfig),
		},
		&cobra.Command{
			Use:   "set-env <development|staging|uat|beta|production>",
			Short: "Switch the release channel",
			Args:  cobra.ExactArgs(1),
			RunE:  st.runE(st.setEnv),
		},
	)
	return cmd
}

func (s *state) showConfig(_ context.Context, _ []string) error {
	t := ui.Current()
	env := s.cfg.Env()
	row := func(k, v string) string { return ui.C(t.Muted, fmt.Sprintf("%-12s", k)) + v }
	ui.Panel([]string{
		ui.C(t.Title, env.AppName) + " " + ui.C(t.Muted, env.Version),
		"",
		row("file", s.cfgPath),
		row("environment", string(config.ResolveEnvironment(s.cfg.Environment))),
		row("api", s.cfg.BaseURL()),
		row("timeout", s.cfg.RequestTimeout().String()),
		row("page size", fmt.Sprint(s.cfg.PageSize)),
		row("theme", s.cfg.Theme),
		row("log level", s.cfg.Logging.Level),
		row("log file", s.cfg.LogFile()),
	})
	return nil
}

func (s *state) setEnv(_ context.Context, args []string) error {
	env := config.Environment(args[0])
	known := false
	for _, e := range config.Environments {
		known = known || e == env
	}
	if !known {
		return usagef("config set-env: unknown environment %q", args[0])
	}
	cfg, err := config.LoadFile(s.cfgPath, s.home)
	if err != nil {
		return err
	}
	cfg.Environment = string(env)
	if err := cfg.Save(s.cfgPath); err != nil {
		return err
	}
	ui.OK("environment set to " + string(env))
	return nil
}
