package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/orderup/internal/api"
)

const (
	fieldDomain = iota
	fieldUsername
	fieldPassword
)

type loginScreen struct {
	ctx    context.Context
	d      *Deps
	inputs []textinput.Model
	focus  int
	showPw bool
	busy   bool
	err    string
}

func newLogin(ctx context.Context, d *Deps) *loginScreen {
	s := &loginScreen{ctx: ctx, d: d}
	for i, ph := range []string{"Enter your domain", "Enter your username", "Enter your password"} {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = ph
		ti.CharLimit = 128
		if i == fieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		s.inputs = append(s.inputs, ti)
	}
	s.inputs[fieldDomain].Focus()
	return s
}

func (s *loginScreen) Title() string       { return "Login" }
func (s *loginScreen) capturesInput() bool { return true }
func (s *loginScreen) Init() tea.Cmd       { return textinput.Blink }

func (s *loginScreen) setFocus(i int) {
	s.inputs[s.focus].Blur()
	s.focus = (i + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *loginScreen) togglePassword() {
	s.showPw = !s.showPw
	if s.showPw {
		s.inputs[fieldPassword].EchoMode = textinput.EchoNormal
	} else {
		s.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	}
}

type loginFailedMsg struct{ err error }

func (s *loginScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginFailedMsg:
		s.busy, s.err = false, msg.err.Error()
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			s.setFocus(s.focus + 1)
			return nil
		case "shift+tab", "up":
			s.setFocus(s.focus - 1)
			return nil
		case "ctrl+p":
			s.togglePassword()
			return nil
		case "esc":
			return tea.Quit
		case "enter":
			if s.focus < fieldPassword {
				s.setFocus(s.focus + 1)
				return nil
			}
			return s.submit()
		}
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *loginScreen) credentials() api.Credentials {
	return api.Credentials{
		Domain:   strings.TrimSpace(s.inputs[fieldDomain].Value()),
		Username: strings.TrimSpace(s.inputs[fieldUsername].Value()),
		Password: s.inputs[fieldPassword].Value(),
	}
}

func (s *loginScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	cr := s.credentials()
	if cr.Domain == "" || cr.Username == "" || cr.Password == "" {
		s.err = "Please fill in all fields"
		return nil
	}
	s.busy, s.err = true, ""
	ctx, c := s.ctx, s.d.Client
	return func() tea.Msg {
		sess, err := c.Login(ctx, cr)
		if err != nil {
			return loginFailedMsg{err}
		}
		return loginMsg{sess}
	}
}

func (s *loginScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in") + "\n\n")
	for i, label := range []string{"Domain", "Username", "Password"} {
		l := mutedStyle.Render(label)
		if i == s.focus {
			l = accentStyle.Render(label)
		}
		b.WriteString(l + "\n" + s.inputs[i].View() + "\n\n")
	}
	switch {
	case s.busy:
		b.WriteString(pendingStyle.Render("Signing in...") + "\n")
	case s.err != "":
		b.WriteString(errorStyle.Render(s.err) + "\n")
	}
	pw := "show"
	if s.showPw {
		pw = "hide"
	}
	b.WriteString(helpStyle.Render("tab next • ctrl+p " + pw + " password • enter sign in • esc quit"))
	return b.String()
}
