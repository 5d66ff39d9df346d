package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/query"
	"github.com/Makepad-fr/orderup/internal/ui"
)

type picklistItem struct{ model.Picklist }

func (i picklistItem) Title() string       { return i.Name }
func (i picklistItem) Description() string { return i.Assignee() }
func (i picklistItem) FilterValue() string { return i.Name }

type picklistDelegate struct{}

func (d picklistDelegate) Height() int                             { return 1 }
func (d picklistDelegate) Spacing() int                            { return 0 }
func (d picklistDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d picklistDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(picklistItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%-8s %s %s %s %s",
		it.Name,
		badge(string(it.Status)),
		progressBar(it.ItemsPicked, it.TotalItems, 10),
		ui.Truncate(it.Assignee(), 18),
		mutedStyle.Render(fmt.Sprintf("%d/%d picked • %d orders • created %s", it.ItemsPicked, it.TotalItems, len(it.Orders), it.CreatedAt)),
	)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

var picklistStatuses = []model.PicklistStatus{"", model.PicklistOpen, model.PicklistInProgress, model.PicklistCompleted}

type picklistsScreen struct {
	ctx       context.Context
	d         *Deps
	pager     *query.Pager[api.PicklistsFilters, model.Picklist]
	list      list.Model
	search    textinput.Model
	searching bool
	status    int
}

type picklistsMsg struct{ err error }

func newPicklists(ctx context.Context, d *Deps) *picklistsScreen {
	l := list.New(nil, picklistDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("picklist", "picklists")
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search picklists..."
	ti.CharLimit = 64

	return &picklistsScreen{
		ctx:    ctx,
		d:      d,
		pager:  query.NewPager[api.PicklistsFilters, model.Picklist](d.Client.Picklists, d.PageSize, d.Logger),
		list:   l,
		search: ti,
	}
}

func (s *picklistsScreen) Title() string       { return "Picklists" }
func (s *picklistsScreen) capturesInput() bool { return s.searching }
func (s *picklistsScreen) Init() tea.Cmd       { return s.refresh() }

func (s *picklistsScreen) filters() api.PicklistsFilters {
	return api.PicklistsFilters{
		Status: string(picklistStatuses[s.status]),
		Search: strings.TrimSpace(s.search.Value()),
	}
}

func (s *picklistsScreen) refresh() tea.Cmd {
	ctx, p, f := s.ctx, s.pager, s.filters()
	return func() tea.Msg { return picklistsMsg{p.Refresh(ctx, f)} }
}

func (s *picklistsScreen) loadMore() tea.Cmd {
	if !s.pager.Pagination().HasMore || s.pager.Loading() {
		return nil
	}
	ctx, p := s.ctx, s.pager
	return func() tea.Msg {
		_, err := p.LoadMore(ctx)
		return picklistsMsg{err}
	}
}

func (s *picklistsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.SetSize(msg.Width-6, max(5, msg.Height-10))
		return nil
	case picklistsMsg:
		if msg.err != nil {
			return func() tea.Msg { return errMsg{msg.err} }
		}
		items := s.pager.Items()
		li := make([]list.Item, len(items))
		for i, p := range items {
			li[i] = picklistItem{p}
		}
		s.list.SetItems(li)
		return nil
	case tea.KeyMsg:
		if s.searching {
			switch msg.String() {
			case "enter":
				s.searching = false
				s.search.Blur()
				return s.refresh()
			case "esc":
				s.searching = false
				s.search.Blur()
				s.search.SetValue("")
				return s.refresh()
			}
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return cmd
		}
		switch msg.String() {
		case "/":
			s.searching = true
			return s.search.Focus()
		case "tab":
			s.status = (s.status + 1) % len(picklistStatuses)
			return s.refresh()
		case "m":
			return s.loadMore()
		case "r":
			return s.refresh()
		case "enter":
			if it, ok := s.list.SelectedItem().(picklistItem); ok {
				return push(newPicklistDetails(s.ctx, s.d, it.ID))
			}
			return nil
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

func (s *picklistsScreen) View() string {
	var b strings.Builder
	label := "All"
	if st := picklistStatuses[s.status]; st != "" {
		label = ui.StatusLabel(string(st))
	}
	b.WriteString(s.search.View() + "   " + accentStyle.Render("Status: "+label) + "\n")
	switch {
	case s.pager.Loading() && len(s.list.Items()) == 0:
		b.WriteString(pendingStyle.Render("Loading picklists..."))
	case len(s.list.Items()) == 0:
		b.WriteString(mutedStyle.Render("No picklists"))
	default:
		b.WriteString(s.list.View())
	}
	pg := s.pager.Pagination()
	footer := fmt.Sprintf("%d of %d picklists • / search • tab status • enter details", len(s.pager.Items()), pg.TotalRecords)
	if pg.HasMore {
		footer += " • m load more"
	}
	b.WriteString("\n" + helpStyle.Render(footer))
	return b.String()
}
