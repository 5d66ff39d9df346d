package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/model"
	"github.com/Makepad-fr/orderup/internal/ui"
	"github.com/Makepad-fr/orderup/internal/workflow"
)

type picklistDetailsScreen struct {
	ctx     context.Context
	d       *Deps
	id      string
	details *model.PicklistDetails
	sheet   *workflow.PickSheet
	cursor  int
	err     error
}

type (
	picklistDetailsMsg struct {
		details model.PicklistDetails
		err     error
	}
	// pickSyncedMsg reports a pick change the server has, or has not, taken.
	pickSyncedMsg struct {
		done string
		err  error
	}
)

func newPicklistDetails(ctx context.Context, d *Deps, id string) *picklistDetailsScreen {
	return &picklistDetailsScreen{ctx: ctx, d: d, id: id}
}

func (s *picklistDetailsScreen) Title() string { return "Picklist" }

func (s *picklistDetailsScreen) Init() tea.Cmd { return s.load() }

func (s *picklistDetailsScreen) load() tea.Cmd {
	ctx, c, id := s.ctx, s.d.Client, s.id
	return func() tea.Msg {
		det, err := c.PicklistDetails(ctx, id)
		return picklistDetailsMsg{det, err}
	}
}

func (s *picklistDetailsScreen) syncItem(it model.PicklistItem) tea.Cmd {
	ctx, c, id := s.ctx, s.d.Client, s.id
	return func() tea.Msg {
		return pickSyncedMsg{err: c.UpdatePicklistItem(ctx, id, it.ID, it.Picked)}
	}
}

func (s *picklistDetailsScreen) current() (model.PicklistItem, bool) {
	if s.sheet == nil || s.cursor < 0 || s.cursor >= len(s.sheet.Items) {
		return model.PicklistItem{}, false
	}
	return s.sheet.Items[s.cursor], true
}

func (s *picklistDetailsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case picklistDetailsMsg:
		s.err = msg.err
		if msg.err == nil {
			s.details = &msg.details
			s.sheet = workflow.NewPickSheet(msg.details.Items)
			s.cursor = min(s.cursor, max(0, len(s.sheet.Items)-1))
		}
		return nil
	case pickSyncedMsg:
		if msg.err != nil {
			return tea.Batch(func() tea.Msg { return errMsg{msg.err} }, s.load())
		}
		if msg.done != "" {
			return notify(msg.done)
		}
		return nil
	case tea.KeyMsg:
		if s.sheet == nil {
			if msg.String() == "r" {
				return s.load()
			}
			return nil
		}
		switch msg.String() {
		case "up", "k":
			s.cursor = max(0, s.cursor-1)
		case "down", "j":
			s.cursor = min(max(0, len(s.sheet.Items)-1), s.cursor+1)
		case " ", "enter":
			if it, ok := s.current(); ok {
				it, _ = s.sheet.Pick(it.ID)
				return s.syncItem(it)
			}
		case "+", "=":
			return s.adjust(1)
		case "-", "_":
			return s.adjust(-1)
		case "a":
			s.sheet.MarkAll()
			ctx, c, id := s.ctx, s.d.Client, s.id
			return func() tea.Msg {
				return pickSyncedMsg{done: "All items marked as picked", err: c.MarkAllItemsPicked(ctx, id)}
			}
		case "c":
			if !s.sheet.Done() {
				return func() tea.Msg { return errMsg{fmt.Errorf("pick every item before completing")} }
			}
			ctx, c, id := s.ctx, s.d.Client, s.id
			name := s.details.Name
			return func() tea.Msg {
				if err := c.CompletePicklist(ctx, id); err != nil {
					return errMsg{err}
				}
				return pickSyncedMsg{done: name + " completed"}
			}
		case "f":
			return push(newPacking(s.ctx, s.d, s.id, s.details.Name))
		case "r":
			return s.load()
		}
	}
	return nil
}

func (s *picklistDetailsScreen) adjust(delta int) tea.Cmd {
	it, ok := s.current()
	if !ok {
		return nil
	}
	before := it.Picked
	it, _ = s.sheet.Adjust(it.ID, delta)
	if it.Picked == before {
		return nil
	}
	return s.syncItem(it)
}

func (s *picklistDetailsScreen) View() string {
	switch {
	case s.err != nil && s.details == nil:
		return errorStyle.Render(s.err.Error()) + "\n" + helpStyle.Render("r retry • esc back")
	case s.details == nil:
		return pendingStyle.Render("Loading picklist...")
	}
	var b strings.Builder
	needed, picked := s.sheet.Totals()
	fmt.Fprintf(&b, "%s %s  %s\n", titleStyle.Render(s.details.Name), badge(string(s.details.Status)),
		mutedStyle.Render("Assigned to "+s.details.Assignee()))
	fmt.Fprintf(&b, "%d of %d items picked  %s\n", picked, needed, progressBar(picked, needed, 20))
	if len(s.details.Orders) > 0 {
		var nums []string
		for _, o := range s.details.Orders {
			nums = append(nums, o.OrderNumber)
		}
		b.WriteString(mutedStyle.Render("Orders: "+strings.Join(nums, ", ")) + "\n")
	}
	b.WriteString("\n" + accentStyle.Render("Unassigned Bin") + "\n")
	for i, it := range s.sheet.Items {
		prefix := "  "
		if i == s.cursor {
			prefix = selectedStyle.Render("> ")
		}
		name := ui.Truncate(it.Name, 28)
		if it.Status == model.PickPicked {
			name = doneStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %-28s %s  %s\n", prefix, checkbox(it.Status == model.PickPicked), name,
			mutedStyle.Render(fmt.Sprintf("SKU %s • %d available • QOH %d", it.SKU, it.Available, it.QOH)),
			fmt.Sprintf("[- %d/%d +]", it.Picked, it.Needed))
	}
	b.WriteString("\n" + helpStyle.Render("space pick • +/- quantity • a mark all • c complete • f proceed to packing • esc back"))
	return b.String()
}
