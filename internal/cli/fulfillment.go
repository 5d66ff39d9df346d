package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/ui"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

func newLocationsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List locations and their staff",
		Args:  cobra.NoArgs,
		RunE:  st.runE(st.listLocations),
	}
}

func (s *state) listLocations(ctx context.Context, _ []string) error {
	locs, err := s.client.Locations(ctx)
	if err != nil {
		return err
	}
	rows := [][]string{{"ID", "NAME", "KIND", "STAFF"}}
	for _, l := range locs {
		var staff []string
		for _, u := range l.Staff {
			staff = append(staff, fmt.Sprintf("%s (%s)", u.Name, u.ID))
		}
		names := strings.Join(staff, ", ")
		if names == "" {
			names = "-"
		}
		rows = append(rows, []string{l.IDNumber, l.Name, string(l.Kind), names})
	}
	ui.Panel(append([]string{ui.C(ui.Current().Title, "Locations"), ""}, ui.Table(rows)...))
	return nil
}

func newPackCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack picked orders and fulfil them",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls <picklist-id>",
			Short: "Orders of a picklist waiting to be packed",
			Args:  cobra.ExactArgs(1),
			RunE:  st.runE(st.listPacking),
		},
		&cobra.Command{
			Use:     "fulfil <picklist-id> [order-id...]",
			Aliases: []string{"fulfill"},
			Short:   "Fulfil packed orders; all of the picklist's orders when none are named",
			Args:    cobra.MinimumNArgs(1),
			RunE:    st.runE(st.fulfil),
		},
	)
	return cmd
}

func (s *state) listPacking(ctx context.Context, args []string) error {
	orders, err := s.client.PackingOrders(ctx, args[0])
	if err != nil {
		return err
	}
	t := ui.Current()
	lines := []string{ui.C(t.Title, "Packing"), ""}
	if len(orders) == 0 {
		lines = append(lines, ui.C(t.Muted, "nothing left to pack"))
	}
	for _, o := range orders {
		lines = append(lines, fmt.Sprintf("%s %s %s %s", ui.C(t.Pending, t.SymPending), o.OrderNumber, o.Customer, ui.Badge(o.Status)))
		for _, it := range o.Items {
			lines = append(lines, ui.C(t.Muted, fmt.Sprintf("    %dx %s", it.Quantity, it.Name)))
		}
		if o.MoreItems > 0 {
			lines = append(lines, ui.C(t.Muted, fmt.Sprintf("    +%d more", o.MoreItems)))
		}
	}
	ui.Panel(lines)
	return nil
}

func (s *state) fulfil(ctx context.Context, args []string) error {
	p := workflow.NewPacking(args[0])
	ids := orderIDs(args[1:])
	if len(ids) == 0 {
		orders, err := s.client.PackingOrders(ctx, args[0])
		if err != nil {
			return err
		}
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("nothing to fulfil for picklist %s", args[0])
	}
	for _, id := range ids {
		p.Proceed(id)
	}
	if err := p.Finalize(ctx, s.client.FulfillOrder); err != nil {
		return err
	}
	s.logger.Info("orders fulfilled", zap.String("picklist", args[0]), zap.Strings("orders", p.Completed()))
	ui.OK(fmt.Sprintf("%d orders fulfilled", len(p.Completed())))
	return nil
}
