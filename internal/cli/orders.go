package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/ui"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

type ordersListFlags struct {
	status  string
	search  string
	sources []string
	payment []string
	rng     string
	from    string
	to      string
	page    int
	limit   int
	all     bool
}

func newOrdersCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"o"},
		Short:   "List and inspect orders",
	}

	var lf ordersListFlags
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: st.runE(func(ctx context.Context, _ []string) error {
			return st.listOrders(ctx, lf)
		}),
	}
	fl := ls.Flags()
	fl.StringVar(&lf.status, "status", "", "new, assigned, picking, ready or completed")
	fl.StringVar(&lf.search, "search", "", "match order number or customer")
	fl.StringSliceVar(&lf.sources, "source", nil, "order sources, e.g. shopify,phone")
	fl.StringSliceVar(&lf.payment, "payment", nil, "paid and/or unpaid")
	fl.StringVar(&lf.rng, "range", workflow.RangeAll, "all, today, yesterday, thisMonth, lastMonth or custom")
	fl.StringVar(&lf.from, "from", "", "custom range start (YYYY-MM-DD)")
	fl.StringVar(&lf.to, "to", "", "custom range end (YYYY-MM-DD)")
	fl.IntVar(&lf.page, "page", 1, "page to show")
	fl.IntVar(&lf.limit, "limit", 0, "page size (default from config)")
	fl.BoolVar(&lf.all, "all", false, "fetch every page")

	var raw bool
	show := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: st.runE(func(ctx context.Context, args []string) error {
			return st.showOrder(ctx, args[0], raw)
		}),
	}
	show.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Move an order to another status",
		Args:  cobra.ExactArgs(2),
		RunE:  st.runE(st.setOrderStatus),
	}

	cmd.AddCommand(ls, show, status)
	return cmd
}

// filterState maps the list flags onto the filter modal's state.
func (f ordersListFlags) filterState() (workflow.FilterState, error) {
	fs := workflow.DefaultFilters()
	valid := false
	for _, o := range workflow.DateRangeOptions {
		valid = valid || o.Value == f.rng
	}
	if !valid {
		return fs, usagef("orders ls: unknown range %q", f.rng)
	}
	fs.DateRange = f.rng
	fs.CustomFrom, fs.CustomTo = f.from, f.to
	if f.rng == workflow.RangeCustom {
		for _, d := range []string{f.from, f.to} {
			if _, err := time.Parse(workflow.DateLayout, d); err != nil {
				return fs, usagef("orders ls: custom range needs --from and --to as YYYY-MM-DD")
			}
		}
	}
	for _, s := range f.sources {
		fs.ToggleSource(strings.ToLower(strings.TrimSpace(s)))
	}
	for _, p := range f.payment {
		fs.TogglePayment(strings.ToLower(strings.TrimSpace(p)))
	}
	return fs, nil
}

func (s *state) listOrders(ctx context.Context, lf ordersListFlags) error {
	if lf.status != "" && !model.OrderStatus(lf.status).Valid() {
		return usagef("orders ls: unknown status %q", lf.status)
	}
	fs, err := lf.filterState()
	if err != nil {
		return err
	}
	q := fs.OrdersFilters(time.Now())
	q.Status, q.Search = lf.status, lf.search
	limit := lf.limit
	if limit <= 0 {
		limit = s.cfg.PageSize
	}

	page, err := s.client.Orders(ctx, max(1, lf.page), limit, q)
	if err != nil {
		return err
	}
	orders := page.Data
	for lf.all && page.HasMore() {
		if page, err = s.client.Orders(ctx, page.PageNo+1, limit, q); err != nil {
			return err
		}
		orders = append(orders, page.Data...)
	}

	var shown []model.Order
	for _, o := range orders {
		if fs.MatchPayment(o) {
			shown = append(shown, o)
		}
	}

	t := ui.Current()
	lines := []string{fmt.Sprintf("%s  %s %d  %s %d",
		ui.C(t.Title, "Orders"),
		ui.C(t.Accent, "Shown"), len(shown),
		ui.C(t.Muted, "Total"), page.TotalRecords,
	), ""}
	if len(shown) == 0 {
		lines = append(lines, ui.C(t.Muted, "no orders"))
	} else {
		rows := [][]string{{"ID", "ORDER", "CUSTOMER", "STATUS", "SOURCE", "ITEMS", "TOTAL"}}
		for _, o := range shown {
			rows = append(rows, []string{o.ID, o.OrderNumber, ui.Truncate(o.CustomerName, 24),
				ui.Badge(string(o.Status)), o.Source, fmt.Sprint(o.ItemCount()), ui.Money(o.TotalAmount)})
		}
		lines = append(lines, ui.Table(rows)...)
	}
	if !lf.all && page.HasMore() {
		lines = append(lines, "", ui.C(t.Muted, fmt.Sprintf("page %d of %d • --page %d for more, --all for everything",
			page.PageNo, page.TotalPages, page.PageNo+1)))
	}
	ui.Panel(lines)
	return nil
}

func (s *state) showOrder(ctx context.Context, id string, raw bool) error {
	o, err := s.client.OrderDetails(ctx, id)
	if err != nil {
		return err
	}
	md := ui.OrderMarkdown(o)
	if raw {
		fmt.Fprint(ui.Stdout, md)
		return nil
	}
	out, err := ui.RenderMarkdown(md, 80)
	if err != nil {
		return err
	}
	fmt.Fprint(ui.Stdout, out)
	return nil
}

func (s *state) setOrderStatus(ctx context.Context, args []string) error {
	st := model.OrderStatus(strings.ToLower(args[1]))
	if !st.Valid() {
		names := make([]string, len(model.OrderStatuses))
		for i, v := range model.OrderStatuses {
			names[i] = string(v)
		}
		return usagef("orders status: unknown status %q (want %s)", args[1], strings.Join(names, ", "))
	}
	if err := s.client.UpdateOrderStatus(ctx, args[0], st); err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("order %s is now %s", args[0], ui.StatusLabel(string(st))))
	return nil
}

func (s *state) dashboard(ctx context.Context, _ []string) error {
	d, err := s.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			ui.C(t.Title, "Orderup"),
			ui.C(t.Accent, "Orders"), d.Stats.TotalOrders,
			ui.C(t.Accent, "Picklists"), d.Stats.TotalPicklists,
			ui.C(t.Success, "Completed today"), d.Stats.CompletedToday),
	}
	if n := d.Unread(); n > 0 {
		lines = append(lines, ui.C(t.Pending, fmt.Sprintf("%d unread notifications", n)))
	}
	section := func(title string, n int) {
		lines = append(lines, "", ui.C(t.Title, fmt.Sprintf("%s (%d)", title, n)))
		if n == 0 {
			lines = append(lines, ui.C(t.Muted, "(none)"))
		}
	}
	section("New Orders", len(d.NewOrders))
	for _, o := range d.NewOrders {
		lines = append(lines, fmt.Sprintf("%s %s  %s", ui.C(t.Info, t.SymPending), o.OrderNumber,
			ui.C(t.Muted, fmt.Sprintf("%s • %d items • %s", o.CustomerName, o.ItemCount(), ui.Money(o.TotalAmount)))))
	}
	section("Active Picklists", len(d.ActivePicklists))
	for _, p := range d.ActivePicklists {
		lines = append(lines, fmt.Sprintf("%s %-8s %s  %s", ui.C(t.Pending, t.SymPending), p.Name,
			ui.ProgressBar(p.ItemsPicked, p.TotalItems, 16), ui.C(t.Muted, p.Assignee())))
	}
	section("Ready for Pickup", len(d.ReadyOrders))
	for _, o := range d.ReadyOrders {
		lines = append(lines, fmt.Sprintf("%s %s  %s", ui.C(t.Success, t.SymDone), o.OrderNumber, ui.C(t.Muted, o.CustomerName)))
	}
	ui.Panel(lines)
	return nil
}

func newDashboardCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summary of new orders, active picklists and pickups",
		Args:  cobra.NoArgs,
		RunE:  st.runE(st.dashboard),
	}
}

// orderIDs splits comma separated and repeated ids.
func orderIDs(args []string) []string {
	var out []string
	for _, a := range args {
		for _, id := range strings.Split(a, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}
