package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/query"
	"github.com/Makepad-fr/orderup/internal/ui"
)

type dashboardScreen struct {
	ctx    context.Context
	d      *Deps
	q      *query.Query[struct{}, model.Dashboard]
	cursor int
}

type dashboardMsg struct{ err error }

// dashEntry is one selectable row: an order of a section, or a picklist.
type dashEntry struct {
	order    *model.Order
	picklist *model.Picklist
	ready    bool
}

func newDashboard(ctx context.Context, d *Deps) *dashboardScreen {
	q := query.New(func(ctx context.Context, _ struct{}) (model.Dashboard, error) {
		return d.Client.Dashboard(ctx)
	}, query.WithLogger[model.Dashboard](d.Logger))
	return &dashboardScreen{ctx: ctx, d: d, q: q}
}

func (s *dashboardScreen) Title() string { return "Dashboard" }

func (s *dashboardScreen) Init() tea.Cmd { return s.load() }

func (s *dashboardScreen) load() tea.Cmd {
	ctx, q := s.ctx, s.q
	return func() tea.Msg {
		_, err := q.Execute(ctx, struct{}{})
		return dashboardMsg{err}
	}
}

func (s *dashboardScreen) entries() []dashEntry {
	d := s.q.Snapshot().Data
	var out []dashEntry
	for i := range d.NewOrders {
		out = append(out, dashEntry{order: &d.NewOrders[i]})
	}
	for i := range d.ActivePicklists {
		out = append(out, dashEntry{picklist: &d.ActivePicklists[i]})
	}
	for i := range d.ReadyOrders {
		out = append(out, dashEntry{order: &d.ReadyOrders[i], ready: true})
	}
	return out
}

func (s *dashboardScreen) current() (dashEntry, bool) {
	e := s.entries()
	if s.cursor < 0 || s.cursor >= len(e) {
		return dashEntry{}, false
	}
	return e[s.cursor], true
}

func (s *dashboardScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardMsg:
		if n := len(s.entries()); s.cursor >= n {
			s.cursor = max(0, n-1)
		}
		if msg.err != nil {
			return func() tea.Msg { return errMsg{msg.err} }
		}
	case orderStatusMsg:
		if msg.err != nil {
			return func() tea.Msg { return errMsg{msg.err} }
		}
		return tea.Batch(notify(fmt.Sprintf("Order %s is now %s", msg.number, ui.StatusLabel(string(msg.status)))), s.load())
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(0, s.cursor-1)
		case "down", "j":
			s.cursor = min(max(0, len(s.entries())-1), s.cursor+1)
		case "r":
			return s.load()
		case "enter":
			e, ok := s.current()
			switch {
			case !ok:
			case e.picklist != nil:
				return push(newPicklistDetails(s.ctx, s.d, e.picklist.ID))
			default:
				return push(newOrderDetails(s.ctx, s.d, e.order.ID))
			}
		case "a":
			if e, ok := s.current(); ok && e.order != nil && !e.ready {
				return setOrderStatus(s.ctx, s.d, *e.order, model.OrderAssigned)
			}
		case "c":
			if e, ok := s.current(); ok && e.ready {
				return setOrderStatus(s.ctx, s.d, *e.order, model.OrderCompleted)
			}
		}
	}
	return nil
}

func (s *dashboardScreen) View() string {
	st := s.q.Snapshot()
	if !st.HasData {
		if st.Err != nil {
			return errorStyle.Render(st.Err.Error()) + "\n" + helpStyle.Render("r retry")
		}
		return pendingStyle.Render("Loading dashboard...")
	}
	d := st.Data
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d",
		accentStyle.Render("Orders"), d.Stats.TotalOrders,
		accentStyle.Render("Picklists"), d.Stats.TotalPicklists,
		successStyle.Render("Completed today"), d.Stats.CompletedToday)
	if n := d.Unread(); n > 0 {
		fmt.Fprintf(&b, "   %s", pendingStyle.Render(fmt.Sprintf("🔔 %d", n)))
	}
	b.WriteString("\n")

	row := 0
	line := func(text string) {
		prefix := "  "
		if row == s.cursor {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(prefix + text + "\n")
		row++
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(fmt.Sprintf("New Orders (%d)", len(d.NewOrders))))
	for _, o := range d.NewOrders {
		line(fmt.Sprintf("%s  %s  %s", o.OrderNumber, o.CustomerName,
			mutedStyle.Render(fmt.Sprintf("%d items • %s", o.ItemCount(), ui.Money(o.TotalAmount)))))
	}
	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(fmt.Sprintf("Active Picklists (%d)", len(d.ActivePicklists))))
	for _, p := range d.ActivePicklists {
		line(fmt.Sprintf("%s  %s  %s", p.Name, mutedStyle.Render("Assigned to "+p.Assignee()),
			progressBar(p.ItemsPicked, p.TotalItems, 12)))
	}
	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(fmt.Sprintf("Ready for Pickup (%d)", len(d.ReadyOrders))))
	for _, o := range d.ReadyOrders {
		pickup := o.PickupTime
		if pickup == "" {
			pickup = "-"
		}
		line(fmt.Sprintf("%s  %s  %s", o.OrderNumber, o.CustomerName, mutedStyle.Render("Pickup "+pickup)))
	}
	if unread := unreadNotifications(d); len(unread) > 0 {
		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Notifications"))
		for _, n := range unread {
			fmt.Fprintf(&b, "  %s %s\n", pendingStyle.Render("•"), n.Title+": "+n.Message)
		}
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ move • enter open • a accept order • c mark collected • r refresh"))
	return b.String()
}

func unreadNotifications(d model.Dashboard) []model.Notification {
	var out []model.Notification
	for _, n := range d.Notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

type orderStatusMsg struct {
	number string
	status model.OrderStatus
	err    error
}

func setOrderStatus(ctx context.Context, d *Deps, o model.Order, st model.OrderStatus) tea.Cmd {
	return func() tea.Msg {
		err := d.Client.UpdateOrderStatus(ctx, o.ID, st)
		return orderStatusMsg{number: o.OrderNumber, status: st, err: err}
	}
}
