package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/ui"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

type packingScreen struct {
	ctx     context.Context
	d       *Deps
	name    string
	orders  []model.PackingOrder
	loaded  bool
	packing *workflow.Packing
	cursor  int
	busy    bool
	err     error
}

type (
	packingMsg struct {
		orders []model.PackingOrder
		err    error
	}
	finalizedMsg struct{ err error }
)

func newPacking(ctx context.Context, d *Deps, picklistID, name string) *packingScreen {
	return &packingScreen{ctx: ctx, d: d, name: name, packing: workflow.NewPacking(picklistID)}
}

func (s *packingScreen) Title() string { return "Packing" }

func (s *packingScreen) Init() tea.Cmd {
	ctx, c, id := s.ctx, s.d.Client, s.packing.PicklistID
	return func() tea.Msg {
		orders, err := c.PackingOrders(ctx, id)
		return packingMsg{orders, err}
	}
}

func (s *packingScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case packingMsg:
		s.err, s.loaded = msg.err, msg.err == nil
		s.orders = msg.orders
		return nil
	case finalizedMsg:
		s.busy = false
		if msg.err != nil {
			return func() tea.Msg { return errMsg{msg.err} }
		}
		n := len(s.packing.Completed())
		return tea.Sequence(home(newDashboard(s.ctx, s.d)), notify(fmt.Sprintf("%d orders fulfilled", n)))
	case tea.KeyMsg:
		if !s.loaded || s.busy {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			s.cursor = max(0, s.cursor-1)
		case "down", "j":
			s.cursor = min(max(0, len(s.orders)-1), s.cursor+1)
		case " ", "enter":
			if s.cursor < len(s.orders) {
				s.packing.Proceed(s.orders[s.cursor].ID)
			}
		case "F":
			return s.finalize()
		}
	}
	return nil
}

func (s *packingScreen) finalize() tea.Cmd {
	if len(s.packing.Completed()) == 0 {
		return func() tea.Msg { return errMsg{fmt.Errorf("no packed orders to fulfil")} }
	}
	s.busy = true
	ctx, d, p := s.ctx, s.d, s.packing
	return func() tea.Msg {
		err := p.Finalize(ctx, d.Client.FulfillOrder)
		if err == nil {
			d.Logger.Info("orders fulfilled", zap.String("picklist", p.PicklistID), zap.Strings("orders", p.Completed()))
		}
		return finalizedMsg{err}
	}
}

func (s *packingScreen) View() string {
	switch {
	case s.err != nil:
		return errorStyle.Render(s.err.Error()) + "\n" + helpStyle.Render("esc back")
	case !s.loaded:
		return pendingStyle.Render("Loading orders to pack...")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render("Packing "+s.name),
		mutedStyle.Render(fmt.Sprintf("%d of %d packed", len(s.packing.Completed()), len(s.orders))))
	if len(s.orders) == 0 {
		b.WriteString(mutedStyle.Render("Nothing left to pack") + "\n")
	}
	for i, o := range s.orders {
		prefix := "  "
		if i == s.cursor {
			prefix = selectedStyle.Render("> ")
		}
		done := s.packing.IsCompleted(o.ID)
		st := o.Status
		if done {
			st = "completed"
		}
		fmt.Fprintf(&b, "%s%s %s %s %s %s\n", prefix, checkbox(done), o.OrderNumber, o.Customer, badge(st),
			mutedStyle.Render(fmt.Sprintf("%s • %s • %s", o.Source, o.Location, ui.Money(o.Total))))
		var lines []string
		for _, it := range o.Items {
			lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
		}
		if o.MoreItems > 0 {
			lines = append(lines, fmt.Sprintf("+%d more", o.MoreItems))
		}
		if len(lines) > 0 {
			b.WriteString("      " + mutedStyle.Render(strings.Join(lines, ", ")) + "\n")
		}
	}
	if s.busy {
		b.WriteString("\n" + pendingStyle.Render("Fulfilling orders..."))
	}
	b.WriteString("\n" + helpStyle.Render("space proceed to fulfillment • F finalize • esc back"))
	return b.String()
}
