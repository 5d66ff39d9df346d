package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/query"
	"github.com/Makepad-fr/orderup/internal/ui"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

// orderItem adapts model.Order to bubbles/list.Item.
type orderItem struct{ model.Order }

func (i orderItem) Title() string       { return i.OrderNumber }
func (i orderItem) Description() string { return i.CustomerName }
func (i orderItem) FilterValue() string { return i.OrderNumber + " " + i.CustomerName }

type orderDelegate struct{ sel *workflow.Selection }

func (d orderDelegate) Height() int                             { return 1 }
func (d orderDelegate) Spacing() int                            { return 0 }
func (d orderDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d orderDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(orderItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s %-20s %-20s %s %s %s",
		checkbox(d.sel.Selected(it.ID)),
		it.OrderNumber,
		ui.Truncate(it.CustomerName, 20),
		badge(string(it.Status)),
		mutedStyle.Render(fmt.Sprintf("%d items • %s • %s", it.ItemCount(), it.Source, it.CreatedAt)),
		ui.Money(it.TotalAmount),
	)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type ordersScreen struct {
	ctx     context.Context
	d       *Deps
	pager   *query.Pager[api.OrdersFilters, model.Order]
	sel     *workflow.Selection
	tab     workflow.OrderTab
	filters workflow.FilterState
	list    list.Model
}

type ordersMsg struct {
	page int
	keep bool // first page that keeps the checks of still listed orders
	err  error
}

var (
	selectBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select"))
	allBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all"))
	tabBind    = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	filterBind = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	moreBind   = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more"))
	pickBind   = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "create picklist"))
)

func newOrders(ctx context.Context, d *Deps) *ordersScreen {
	sel := workflow.NewSelection()
	l := list.New(nil, orderDelegate{sel: sel}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("order", "orders")
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding {
		return []key.Binding{selectBind, allBind, tabBind, filterBind, moreBind, pickBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	return &ordersScreen{
		ctx:     ctx,
		d:       d,
		pager:   query.NewPager[api.OrdersFilters, model.Order](d.Client.Orders, d.PageSize, d.Logger),
		sel:     sel,
		filters: workflow.DefaultFilters(),
		list:    l,
	}
}

func (s *ordersScreen) Title() string { return "Orders" }

func (s *ordersScreen) Init() tea.Cmd { return s.refresh() }

func (s *ordersScreen) resume() tea.Cmd {
	ctx, p, f := s.ctx, s.pager, s.listFilters()
	return func() tea.Msg {
		return ordersMsg{page: 1, keep: true, err: p.Refresh(ctx, f)}
	}
}

func (s *ordersScreen) listFilters() api.OrdersFilters {
	f := s.filters.OrdersFilters(s.d.now())
	f.Status = string(s.tab.Status())
	return f
}

func (s *ordersScreen) refresh() tea.Cmd {
	ctx, p, f := s.ctx, s.pager, s.listFilters()
	return func() tea.Msg {
		return ordersMsg{page: 1, err: p.Refresh(ctx, f)}
	}
}

func (s *ordersScreen) loadMore() tea.Cmd {
	if !s.pager.Pagination().HasMore || s.pager.Loading() {
		return nil
	}
	ctx, p := s.ctx, s.pager
	return func() tea.Msg {
		_, err := p.LoadMore(ctx)
		return ordersMsg{page: p.Pagination().Page, err: err}
	}
}

// visible is the loaded orders that pass the payment filter.
func (s *ordersScreen) visible() []model.Order {
	var out []model.Order
	for _, o := range s.pager.Items() {
		if s.filters.MatchPayment(o) {
			out = append(out, o)
		}
	}
	return out
}

func (s *ordersScreen) sync(page int, keep bool) {
	orders := s.visible()
	ids := make([]string, len(orders))
	items := make([]list.Item, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		items[i] = orderItem{o}
	}
	switch {
	case page <= 1 && keep:
		s.sel.Retain(ids...)
	case page <= 1:
		s.sel.Reset(ids...)
	default:
		s.sel.Add(ids...)
	}
	s.list.SetItems(items)
}

func (s *ordersScreen) selected() (model.Order, bool) {
	it, ok := s.list.SelectedItem().(orderItem)
	return it.Order, ok
}

func (s *ordersScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.SetSize(msg.Width-6, max(5, msg.Height-12))
		return nil
	case ordersMsg:
		if msg.err != nil {
			return func() tea.Msg { return errMsg{msg.err} }
		}
		s.sync(msg.page, msg.keep)
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			if o, ok := s.selected(); ok {
				s.sel.Toggle(o.ID)
			}
			return nil
		case "a":
			s.sel.SelectAll()
			return nil
		case "tab":
			s.tab = s.tab.Next()
			return s.refresh()
		case "f":
			return push(newFilterModal(&s.filters))
		case "m":
			return s.loadMore()
		case "r":
			return s.refresh()
		case "enter":
			if o, ok := s.selected(); ok {
				return push(newOrderDetails(s.ctx, s.d, o.ID))
			}
			return nil
		case "p":
			ids := s.sel.IDs()
			if len(ids) == 0 {
				return func() tea.Msg { return errMsg{fmt.Errorf("select at least one order")} }
			}
			return push(newLocationSelect(s.ctx, s.d, ids))
		case "down", "j":
			if s.list.Index() == len(s.list.Items())-1 {
				if cmd := s.loadMore(); cmd != nil {
					return cmd
				}
			}
		}
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

func (s *ordersScreen) View() string {
	var tabs []string
	for _, t := range workflow.OrderTabs {
		if t == s.tab {
			tabs = append(tabs, activeTab.Render(t.String()))
		} else {
			tabs = append(tabs, mutedStyle.Render(t.String()))
		}
	}
	var b strings.Builder
	b.WriteString(strings.Join(tabs, "  "))
	if s.filters.Active() {
		b.WriteString("   " + pendingStyle.Render("filtered"))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s Select All   %s\n", checkbox(s.sel.AllSelected()),
		mutedStyle.Render(fmt.Sprintf("%d selected", s.sel.Count()))))

	pg := s.pager.Pagination()
	switch {
	case s.pager.Loading() && len(s.list.Items()) == 0:
		b.WriteString(pendingStyle.Render("Loading orders..."))
	case len(s.list.Items()) == 0 && s.pager.Err() == nil:
		b.WriteString(mutedStyle.Render("No orders"))
	default:
		b.WriteString(s.list.View())
	}
	footer := fmt.Sprintf("%d of %d orders", len(s.pager.Items()), pg.TotalRecords)
	if pg.HasMore {
		footer += " • m load more"
	}
	if s.pager.Loading() {
		footer += " • loading..."
	}
	b.WriteString("\n" + helpStyle.Render(footer))
	return b.String()
}
