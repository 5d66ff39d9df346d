package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/orderup/internal/tui"
)

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "orderup",
		Short: "Retail order fulfilment from the terminal",
		Long: `orderup pulls incoming orders, groups them into picklists, tracks picking
and packs orders for fulfilment.

Run without a command to start the interactive UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st.interactive = cmd == cmd.Root() || cmd.Name() == "tui"
			return st.setup()
		},
		Args: cobra.NoArgs,
		RunE: st.runE(st.runTUI),
	}
	f := root.PersistentFlags()
	f.StringVar(&st.envFlag, "env", "", "release channel: development, staging, uat, beta or production")
	f.StringVar(&st.configFlag, "config", "", "config file (default $ORDERUP_HOME/config.yaml)")
	f.StringVar(&st.themeFlag, "theme", "", "output theme: classic, neon or mono")
	f.BoolVarP(&st.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&st.noColor, "no-color", false, "disable colours")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Start the interactive UI",
			Args:  cobra.NoArgs,
			RunE:  st.runE(st.runTUI),
		},
		newAuthCmd(st),
		newDashboardCmd(st),
		newOrdersCmd(st),
		newPicklistsCmd(st),
		newLocationsCmd(st),
		newPackCmd(st),
		newConfigCmd(st),
	)
	return root
}

func (s *state) runTUI(ctx context.Context, _ []string) error {
	return tui.Run(ctx, tui.Deps{
		Client:   s.client,
		Store:    s.store,
		Logger:   s.logger,
		PageSize: s.cfg.PageSize,
	})
}
