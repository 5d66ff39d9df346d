package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/ui"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

func newPicklistsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "picklists",
		Aliases: []string{"pl"},
		Short:   "Create, pick and complete picklists",
	}

	var (
		f     api.PicklistsFilters
		page  int
		limit int
	)
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List picklists",
		Args:  cobra.NoArgs,
		RunE: st.runE(func(ctx context.Context, _ []string) error {
			return st.listPicklists(ctx, f, page, limit)
		}),
	}
	ls.Flags().StringVar(&f.Status, "status", "", "open, in_progress or completed")
	ls.Flags().StringVar(&f.AssignedTo, "assigned", "", "assignee user id")
	ls.Flags().StringVar(&f.Search, "search", "", "match name or assignee")
	ls.Flags().IntVar(&page, "page", 1, "page to show")
	ls.Flags().IntVar(&limit, "limit", 0, "page size (default from config)")

	var qty int
	pick := &cobra.Command{
		Use:   "pick <picklist-id> <item-id>",
		Short: "Pick an item; the whole needed quantity unless --qty is given",
		Args:  cobra.ExactArgs(2),
		RunE: st.runE(func(ctx context.Context, args []string) error {
			return st.pickItem(ctx, args[0], args[1], qty)
		}),
	}
	pick.Flags().IntVar(&qty, "qty", -1, "picked quantity, clamped to what is needed")

	var location, assignee string
	create := &cobra.Command{
		Use:   "create <order-id>...",
		Short: "Group orders into a new picklist",
		Args:  cobra.MinimumNArgs(1),
		RunE: st.runE(func(ctx context.Context, args []string) error {
			return st.createPicklist(ctx, orderIDs(args), location, assignee)
		}),
	}
	create.Flags().StringVar(&location, "location", "", "location id (default: first location)")
	create.Flags().StringVar(&assignee, "assign", "", "user id to assign, from the location's staff")

	cmd.AddCommand(ls,
		&cobra.Command{
			Use:   "show <picklist-id>",
			Short: "Show a picklist and its items",
			Args:  cobra.ExactArgs(1),
			RunE:  st.runE(st.showPicklist),
		},
		pick,
		&cobra.Command{
			Use:   "mark-all <picklist-id>",
			Short: "Mark every item picked",
			Args:  cobra.ExactArgs(1),
			RunE:  st.runE(st.markAll),
		},
		&cobra.Command{
			Use:   "complete <picklist-id>",
			Short: "Complete a fully picked picklist",
			Args:  cobra.ExactArgs(1),
			RunE:  st.runE(st.completePicklist),
		},
		create,
	)
	return cmd
}

func (s *state) listPicklists(ctx context.Context, f api.PicklistsFilters, page, limit int) error {
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	res, err := s.client.Picklists(ctx, max(1, page), limit, f)
	if err != nil {
		return err
	}
	t := ui.Current()
	lines := []string{fmt.Sprintf("%s  %s %d", ui.C(t.Title, "Picklists"), ui.C(t.Muted, "Total"), res.TotalRecords), ""}
	if len(res.Data) == 0 {
		lines = append(lines, ui.C(t.Muted, "no picklists"))
	} else {
		rows := [][]string{{"ID", "NAME", "STATUS", "PROGRESS", "ASSIGNED", "CREATED"}}
		for _, p := range res.Data {
			rows = append(rows, []string{ui.Truncate(p.ID, 12), p.Name, ui.Badge(string(p.Status)),
				ui.ProgressBar(p.ItemsPicked, p.TotalItems, 10), p.Assignee(), p.CreatedAt})
		}
		lines = append(lines, ui.Table(rows)...)
	}
	if res.HasMore() {
		lines = append(lines, "", ui.C(t.Muted, fmt.Sprintf("page %d of %d", res.PageNo, res.TotalPages)))
	}
	ui.Panel(lines)
	return nil
}

func (s *state) showPicklist(ctx context.Context, args []string) error {
	d, err := s.client.PicklistDetails(ctx, args[0])
	if err != nil {
		return err
	}
	printSheet(d, workflow.NewPickSheet(d.Items))
	return nil
}

// printSheet renders the items of a picklist the way `ls` renders todos.
func printSheet(d model.PicklistDetails, sheet *workflow.PickSheet) {
	t := ui.Current()
	needed, picked := sheet.Totals()
	lines := []string{
		fmt.Sprintf("%s %s  %s", ui.C(t.Title, d.Name), ui.Badge(string(d.Status)), ui.C(t.Muted, "Assigned to "+d.Assignee())),
		ui.C(t.Muted, ui.ProgressBar(picked, needed, 28)) + fmt.Sprintf("  %d/%d", picked, needed),
		"",
	}
	for _, it := range sheet.Items {
		box, color := t.BoxUnchecked, t.Muted
		if it.Status == model.PickPicked {
			box, color = t.BoxChecked, t.Success
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			ui.C(dimColor, fmt.Sprintf("%3s.", it.ID)), ui.C(color, box),
			ui.Pad(ui.Truncate(it.Name, 32), 32),
			ui.C(t.Muted, fmt.Sprintf("%d/%d  SKU %s", it.Picked, it.Needed, it.SKU))))
	}
	if len(d.Orders) > 0 {
		lines = append(lines, "")
		for _, o := range d.Orders {
			lines = append(lines, ui.C(t.Muted, "order ")+o.OrderNumber+ui.C(t.Muted, " "+o.CustomerName))
		}
	}
	ui.Panel(lines)
}

const dimColor = "\033[2m"

func (s *state) pickItem(ctx context.Context, picklistID, itemID string, qty int) error {
	d, err := s.client.PicklistDetails(ctx, picklistID)
	if err != nil {
		return err
	}
	sheet := workflow.NewPickSheet(d.Items)
	var it model.PicklistItem
	if qty < 0 {
		it, err = sheet.Pick(itemID)
	} else {
		var cur model.PicklistItem
		for _, x := range sheet.Items {
			if x.ID == itemID {
				cur = x
			}
		}
		it, err = sheet.Adjust(itemID, qty-cur.Picked)
	}
	if err != nil {
		return usagef("pick: %v", err)
	}
	if err := s.client.UpdatePicklistItem(ctx, picklistID, it.ID, it.Picked); err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("%s: %d/%d picked", it.Name, it.Picked, it.Needed))
	if sheet.Done() {
		ui.Hint("Every item is picked. Complete with `orderup picklists complete " + picklistID + "`")
	}
	return nil
}

func (s *state) markAll(ctx context.Context, args []string) error {
	if err := s.client.MarkAllItemsPicked(ctx, args[0]); err != nil {
		return err
	}
	ui.OK("all items marked as picked")
	return nil
}

func (s *state) completePicklist(ctx context.Context, args []string) error {
	if err := s.client.CompletePicklist(ctx, args[0]); err != nil {
		return err
	}
	ui.OK("picklist completed")
	return nil
}

func (s *state) createPicklist(ctx context.Context, ids []string, location, assignee string) error {
	if len(ids) == 0 {
		return usagef("picklists create: no order ids")
	}
	locs, err := s.client.Locations(ctx)
	if err != nil {
		return err
	}
	lp := workflow.NewLocationPick(locs)
	if location != "" {
		if err := lp.Select(location); err != nil {
			return usagef("picklists create: %v", err)
		}
	}
	if err := lp.Assign(assignee); err != nil {
		return usagef("picklists create: %v", err)
	}
	req, err := lp.Request(ids)
	if err != nil {
		return usagef("picklists create: %v", err)
	}
	id, err := s.client.CreatePicklist(ctx, req)
	if err != nil {
		return err
	}
	loc, _ := lp.Location()
	ui.OK(fmt.Sprintf("picklist %s created at %s for %d orders", id, loc.Name, len(ids)))
	return nil
}
