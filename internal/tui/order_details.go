package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/ui"
)

type orderDetailsScreen struct {
	ctx   context.Context
	d     *Deps
	id    string
	order *model.Order
	vp    viewport.Model
	width int
	err   error
}

type orderDetailsMsg struct {
	order    model.Order
	rendered string
	err      error
}

func newOrderDetails(ctx context.Context, d *Deps, id string) *orderDetailsScreen {
	return &orderDetailsScreen{ctx: ctx, d: d, id: id, vp: viewport.New(80, 20), width: 80}
}

func (s *orderDetailsScreen) Title() string { return "Order Details" }

func (s *orderDetailsScreen) Init() tea.Cmd { return s.load() }

func (s *orderDetailsScreen) load() tea.Cmd {
	ctx, d, id, w := s.ctx, s.d, s.id, s.width
	return func() tea.Msg {
		o, err := d.Client.OrderDetails(ctx, id)
		if err != nil {
			return orderDetailsMsg{err: err}
		}
		out, err := ui.RenderMarkdown(ui.OrderMarkdown(o), w)
		if err != nil {
			d.Logger.Debug("markdown render failed")
			out = ui.OrderMarkdown(o)
		}
		return orderDetailsMsg{order: o, rendered: out}
	}
}

func (s *orderDetailsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = max(20, msg.Width-8)
		s.vp.Width, s.vp.Height = s.width, max(5, msg.Height-10)
		return nil
	case orderDetailsMsg:
		s.err = msg.err
		if msg.err != nil {
			return nil
		}
		s.order = &msg.order
		s.vp.SetContent(msg.rendered)
		return nil
	case orderStatusMsg:
		if msg.err != nil {
			return func() tea.Msg { return errMsg{msg.err} }
		}
		return tea.Batch(notify(fmt.Sprintf("Order %s is now %s", msg.number, ui.StatusLabel(string(msg.status)))), s.load())
	case tea.KeyMsg:
		if s.order != nil {
			switch msg.String() {
			case "p":
				return setOrderStatus(s.ctx, s.d, *s.order, model.OrderPicking)
			case "y":
				return setOrderStatus(s.ctx, s.d, *s.order, model.OrderReady)
			case "c":
				return setOrderStatus(s.ctx, s.d, *s.order, model.OrderCompleted)
			}
		}
		if msg.String() == "r" {
			return s.load()
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *orderDetailsScreen) View() string {
	switch {
	case s.err != nil:
		return errorStyle.Render(s.err.Error()) + "\n" + helpStyle.Render("r retry • esc back")
	case s.order == nil:
		return pendingStyle.Render("Loading order...")
	}
	return s.vp.View() + "\n" + helpStyle.Render(fmt.Sprintf("%s • p processing • y ready • c completed • ↑/↓ scroll • esc back", badge(string(s.order.Status))))
}
