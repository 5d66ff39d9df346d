package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/workflow"
)

const (
	secDate = iota
	secSource
	secPayment
	secCustom
)

// filterModal edits a copy of the order filters and writes it back on apply.
type filterModal struct {
	target *workflow.FilterState
	f      workflow.FilterState
	sec    int
	cursor [3]int
	from   textinput.Model
	to     textinput.Model
	onTo   bool
}

func newFilterModal(target *workflow.FilterState) *filterModal {
	m := &filterModal{target: target, f: *target}
	m.f.OrderSources = slices.Clone(target.OrderSources)
	m.f.PaymentStatus = slices.Clone(target.PaymentStatus)
	for _, ti := range []*textinput.Model{&m.from, &m.to} {
		*ti = textinput.New()
		ti.Placeholder = workflow.DateLayout
		ti.CharLimit = 10
		ti.Prompt = ""
	}
	m.from.SetValue(target.CustomFrom)
	m.to.SetValue(target.CustomTo)
	return m
}

func (m *filterModal) Title() string       { return "Filters" }
func (m *filterModal) Init() tea.Cmd       { return nil }
func (m *filterModal) capturesInput() bool { return m.sec == secCustom }

func (m *filterModal) options() []workflow.Option {
	switch m.sec {
	case secSource:
		return workflow.OrderSourceOptions
	case secPayment:
		return workflow.PaymentStatusOptions
	}
	return workflow.DateRangeOptions
}

func (m *filterModal) sections() int {
	if m.f.DateRange == workflow.RangeCustom {
		return 4
	}
	return 3
}

func (m *filterModal) focusCustom() {
	m.from.Blur()
	m.to.Blur()
	if m.sec != secCustom {
		return
	}
	if m.onTo {
		m.to.Focus()
	} else {
		m.from.Focus()
	}
}

func (m *filterModal) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch k.String() {
	case "tab":
		m.sec = (m.sec + 1) % m.sections()
		m.focusCustom()
		return nil
	case "shift+tab":
		m.sec = (m.sec - 1 + m.sections()) % m.sections()
		m.focusCustom()
		return nil
	case "enter":
		return m.apply()
	case "esc":
		return pop
	}

	if m.sec == secCustom {
		switch k.String() {
		case "up", "down":
			m.onTo = !m.onTo
			m.focusCustom()
			return nil
		}
		var cmd tea.Cmd
		if m.onTo {
			m.to, cmd = m.to.Update(msg)
		} else {
			m.from, cmd = m.from.Update(msg)
		}
		return cmd
	}

	opts := m.options()
	switch k.String() {
	case "up", "k":
		m.cursor[m.sec] = max(0, m.cursor[m.sec]-1)
	case "down", "j":
		m.cursor[m.sec] = min(len(opts)-1, m.cursor[m.sec]+1)
	case " ", "x":
		v := opts[m.cursor[m.sec]].Value
		switch m.sec {
		case secDate:
			m.f.DateRange = v
		case secSource:
			m.f.ToggleSource(v)
		case secPayment:
			m.f.TogglePayment(v)
		}
	case "c":
		m.f.Clear()
		m.from.SetValue("")
		m.to.SetValue("")
	}
	return nil
}

func (m *filterModal) apply() tea.Cmd {
	m.f.CustomFrom = strings.TrimSpace(m.from.Value())
	m.f.CustomTo = strings.TrimSpace(m.to.Value())
	if m.f.DateRange != workflow.RangeCustom {
		m.f.CustomFrom, m.f.CustomTo = "", ""
	}
	*m.target = m.f
	return pop
}

func (m *filterModal) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter Orders") + "\n")
	section := func(sec int, title string, opts []workflow.Option, on func(string) bool) {
		head := mutedStyle.Render(title)
		if m.sec == sec {
			head = accentStyle.Render(title)
		}
		b.WriteString("\n" + head + "\n")
		for i, o := range opts {
			prefix := "  "
			if m.sec == sec && m.cursor[sec] == i {
				prefix = selectedStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, checkbox(on(o.Value)), o.Label))
		}
	}
	section(secDate, "Date Range", workflow.DateRangeOptions, func(v string) bool { return m.f.DateRange == v })
	section(secSource, "Order Source", workflow.OrderSourceOptions, func(v string) bool { return slices.Contains(m.f.OrderSources, v) })
	section(secPayment, "Payment Status", workflow.PaymentStatusOptions, func(v string) bool { return slices.Contains(m.f.PaymentStatus, v) })
	if m.f.DateRange == workflow.RangeCustom {
		head := mutedStyle.Render("Custom Range")
		if m.sec == secCustom {
			head = accentStyle.Render("Custom Range")
		}
		b.WriteString("\n" + head + "\n")
		b.WriteString("  From " + m.from.View() + "\n")
		b.WriteString("  To   " + m.to.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab section • space toggle • c clear all • enter apply • esc cancel"))
	return b.String()
}
