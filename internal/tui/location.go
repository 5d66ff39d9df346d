package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

type locationScreen struct {
	ctx      context.Context
	d        *Deps
	orderIDs []string
	pick     *workflow.LocationPick
	// staffCursor 0 is "unassigned", i > 0 is Staff[i-1].
	staffCursor int
	busy        bool
	err         error
}

type (
	locationsMsg struct {
		locs []model.Location
		err  error
	}
	createFailedMsg struct{ err error }
)

func newLocationSelect(ctx context.Context, d *Deps, orderIDs []string) *locationScreen {
	return &locationScreen{ctx: ctx, d: d, orderIDs: orderIDs}
}

func (s *locationScreen) Title() string { return "Select Location" }

func (s *locationScreen) Init() tea.Cmd {
	if s.pick != nil {
		return nil
	}
	ctx, c := s.ctx, s.d.Client
	return func() tea.Msg {
		locs, err := c.Locations(ctx)
		return locationsMsg{locs, err}
	}
}

func (s *locationScreen) staff() []model.User {
	if loc, ok := s.pick.Location(); ok {
		return loc.Staff
	}
	return nil
}

func (s *locationScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case locationsMsg:
		s.err = msg.err
		if msg.err == nil {
			s.pick = workflow.NewLocationPick(msg.locs)
			s.pick.SetKind(model.LocationStore)
		}
		return nil
	case createFailedMsg:
		s.busy = false
		return func() tea.Msg { return errMsg{msg.err} }
	case tea.KeyMsg:
		if s.pick == nil || s.busy {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			s.pick.Move(-1)
			s.staffCursor = 0
		case "down", "j":
			s.pick.Move(1)
			s.staffCursor = 0
		case "left", "h":
			s.assign(s.staffCursor - 1)
		case "right", "l":
			s.assign(s.staffCursor + 1)
		case "tab":
			kind := model.LocationWarehouse
			if s.pick.Kind() == model.LocationWarehouse {
				kind = model.LocationStore
			}
			s.pick.SetKind(kind)
			s.staffCursor = 0
		case "enter":
			return s.create()
		}
	}
	return nil
}

// assign moves the assignee cursor, wrapping through "unassigned".
func (s *locationScreen) assign(i int) {
	staff := s.staff()
	n := len(staff) + 1
	s.staffCursor = (i%n + n) % n
	id := ""
	if s.staffCursor > 0 {
		id = staff[s.staffCursor-1].ID
	}
	_ = s.pick.Assign(id)
}

func (s *locationScreen) create() tea.Cmd {
	req, err := s.pick.Request(s.orderIDs)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	s.busy = true
	ctx, d := s.ctx, s.d
	return func() tea.Msg {
		id, err := d.Client.CreatePicklist(ctx, req)
		if err != nil {
			return createFailedMsg{err}
		}
		d.Logger.Info("picklist created", zap.String("id", id), zap.Strings("orders", req.OrderIDs))
		return homeThenPushMsg{
			base: newPicklists(ctx, d),
			top:  newPicklistDetails(ctx, d, id),
			note: fmt.Sprintf("Picklist created for %d orders", len(req.OrderIDs)),
		}
	}
}

func (s *locationScreen) View() string {
	switch {
	case s.err != nil:
		return errorStyle.Render(s.err.Error()) + "\n" + helpStyle.Render("esc back")
	case s.pick == nil:
		return pendingStyle.Render("Loading locations...")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render("Select Location"),
		mutedStyle.Render(fmt.Sprintf("%d orders selected", len(s.orderIDs))))
	for _, k := range []model.LocationKind{model.LocationStore, model.LocationWarehouse} {
		label := " " + strings.ToUpper(string(k[:1])) + string(k[1:]) + " "
		if k == s.pick.Kind() {
			label = activeTab.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		b.WriteString(label + " ")
	}
	b.WriteString("\n\n")
	sel, ok := s.pick.Location()
	if !ok {
		b.WriteString(mutedStyle.Render("  no locations") + "\n")
	}
	for _, loc := range s.pick.Visible() {
		prefix := "  "
		if loc.ID == sel.ID {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, loc.Name, mutedStyle.Render("ID: "+loc.IDNumber))
	}
	b.WriteString("\n" + accentStyle.Render("Assign to") + "\n")
	opts := []string{"Unassigned"}
	for _, u := range s.staff() {
		opts = append(opts, u.Name)
	}
	for i, name := range opts {
		if i == s.staffCursor {
			name = selectedStyle.Render(name)
		}
		b.WriteString("  " + name)
	}
	b.WriteString("\n")
	if s.busy {
		b.WriteString("\n" + pendingStyle.Render("Creating picklist..."))
	}
	b.WriteString("\n" + helpStyle.Render("tab store/warehouse • ↑/↓ location • ←/→ assignee • enter create picklist • esc back"))
	return b.String()
}
