// Package tui is the interactive terminal client.
package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/auth"
	"github.com/Makepad-fr/orderup/internal/model"
)

// Deps is what the screens talk to.
type Deps struct {
	Client   *api.Client
	Store    *auth.Store
	Logger   *zap.Logger
	PageSize int
	Now      func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// screen is one page of the app. Screens are pointers and mutate in place.
type screen interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
	Title() string
}

// resumer is a screen that reloads without losing local state when the
// screen above it is popped.
type resumer interface {
	resume() tea.Cmd
}

// inputScreen is a screen whose text fields currently take every key.
type inputScreen interface {
	capturesInput() bool
}

type (
	pushMsg   struct{ s screen }
	popMsg    struct{}
	homeMsg   struct{ s screen }
	errMsg    struct{ err error }
	statusMsg string
	tokenMsg  struct{ closed bool }
	loginMsg  struct{ session api.Session }
	logoutMsg struct{}

	// homeThenPushMsg resets to base and opens top over it.
	homeThenPushMsg struct {
		base, top screen
		note      string
	}
)

func push(s screen) tea.Cmd { return func() tea.Msg { return pushMsg{s} } }
func home(s screen) tea.Cmd { return func() tea.Msg { return homeMsg{s} } }

func pop() tea.Msg {
	return popMsg{}
}

func notify(s string) tea.Cmd {
	return func() tea.Msg { return statusMsg(s) }
}

// App is the root bubbletea model. Screens stack; esc pops.
type App struct {
	ctx   context.Context
	d     *Deps
	stack []screen
	user  *model.User
	watch <-chan struct{}

	width, height int
	status        string
	statusErr     bool
}

// NewApp starts on the dashboard when a live token is stored, otherwise on
// the login form. watch may be nil.
func NewApp(ctx context.Context, d Deps, watch <-chan struct{}) *App {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	a := &App{ctx: ctx, d: &d, watch: watch, width: 100, height: 30}
	if a.loggedIn() {
		if ti, _ := d.Store.Get(); ti != nil {
			a.user = userFromToken(ti.Token)
		}
		a.stack = []screen{newDashboard(a.ctx, a.d)}
	} else {
		a.stack = []screen{newLogin(a.ctx, a.d)}
	}
	return a
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, d Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watch, err := d.Store.Watch(ctx)
	if err != nil {
		d.Logger.Warn("credentials watch unavailable", zap.Error(err))
		watch = nil
	}
	p := tea.NewProgram(NewApp(ctx, d, watch), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (a *App) loggedIn() bool {
	if a.d.Store == nil {
		return false
	}
	ti, err := a.d.Store.Get()
	return err == nil && ti != nil && !ti.Expired(a.d.now())
}

func userFromToken(tok string) *model.User {
	c, ok := auth.Claims(tok)
	if !ok {
		return nil
	}
	u := &model.User{}
	u.ID, _ = c["sub"].(string)
	u.Name, _ = c["name"].(string)
	if r, ok := c["role"].(string); ok {
		u.Role = model.UserRole(r)
	}
	if u.Name == "" {
		return nil
	}
	return u
}

func (a *App) top() screen { return a.stack[len(a.stack)-1] }

// Screen is the title of the visible screen.
func (a *App) Screen() string { return a.top().Title() }

func (a *App) waitToken() tea.Cmd {
	if a.watch == nil {
		return nil
	}
	ch := a.watch
	return func() tea.Msg {
		_, ok := <-ch
		return tokenMsg{closed: !ok}
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.top().Init(), a.waitToken())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.top().Update(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if in, ok := a.top().(inputScreen); ok && in.capturesInput() {
			return a, a.top().Update(msg)
		}
		if _, onLogin := a.top().(*loginScreen); !onLogin {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				return a, a.reset(newDashboard(a.ctx, a.d))
			case "2":
				return a, a.reset(newOrders(a.ctx, a.d))
			case "3":
				return a, a.reset(newPicklists(a.ctx, a.d))
			case "4":
				return a, a.logout()
			case "esc":
				if len(a.stack) > 1 {
					return a, pop
				}
			}
		}
		return a, a.top().Update(msg)

	case pushMsg:
		a.stack = append(a.stack, msg.s)
		a.clearStatus()
		return a, tea.Batch(msg.s.Init(), a.size())

	case popMsg:
		if len(a.stack) > 1 {
			a.stack = a.stack[:len(a.stack)-1]
		}
		a.clearStatus()
		if r, ok := a.top().(resumer); ok {
			return a, r.resume()
		}
		return a, a.top().Init()

	case homeMsg:
		return a, a.reset(msg.s)

	case homeThenPushMsg:
		a.stack = []screen{msg.base, msg.top}
		a.status, a.statusErr = msg.note, false
		return a, tea.Batch(msg.top.Init(), a.size())

	case statusMsg:
		a.status, a.statusErr = string(msg), false
		return a, nil

	case errMsg:
		return a, a.fail(msg.err)

	case loginMsg:
		if err := a.d.Store.Set(msg.session.Token, msg.session.ExpiresAt); err != nil {
			return a, a.fail(err)
		}
		u := msg.session.User
		a.user = &u
		a.d.Logger.Info("logged in", zap.String("user", u.Name))
		cmd := a.reset(newDashboard(a.ctx, a.d))
		a.status = "Welcome, " + u.Name
		return a, cmd

	case logoutMsg:
		a.user = nil
		return a, a.reset(newLogin(a.ctx, a.d))

	case tokenMsg:
		if msg.closed {
			a.watch = nil
			return a, nil
		}
		if _, onLogin := a.top().(*loginScreen); !onLogin && !a.loggedIn() {
			a.d.Logger.Info("token removed, back to login")
			a.user = nil
			cmd := a.reset(newLogin(a.ctx, a.d))
			a.status, a.statusErr = "Session ended, please log in again", true
			return a, tea.Batch(cmd, a.waitToken())
		}
		return a, a.waitToken()
	}
	return a, a.top().Update(msg)
}

func (a *App) reset(s screen) tea.Cmd {
	a.stack = []screen{s}
	a.clearStatus()
	return tea.Batch(s.Init(), a.size())
}

func (a *App) size() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func (a *App) clearStatus() { a.status, a.statusErr = "", false }

// fail shows err; an authorization failure drops the session.
func (a *App) fail(err error) tea.Cmd {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	a.d.Logger.Warn("request failed", zap.String("screen", a.Screen()), zap.Error(err))
	if api.StatusOf(err) == http.StatusUnauthorized {
		if _, onLogin := a.top().(*loginScreen); !onLogin {
			_ = a.d.Store.Delete()
			a.user = nil
			cmd := a.reset(newLogin(a.ctx, a.d))
			a.status, a.statusErr = err.Error(), true
			return cmd
		}
	}
	a.status, a.statusErr = err.Error(), true
	return nil
}

func (a *App) logout() tea.Cmd {
	ctx, d := a.ctx, a.d
	return func() tea.Msg {
		if err := d.Client.Logout(ctx); err != nil {
			d.Logger.Warn("logout request failed", zap.Error(err))
		}
		if err := d.Store.Delete(); err != nil {
			return errMsg{err}
		}
		return logoutMsg{}
	}
}

var sidebarItems = []string{"Dashboard", "Orders", "Picklists", "Log out"}

func (a *App) sidebar() string {
	parts := make([]string, 0, len(sidebarItems))
	base := a.stack[0].Title()
	for i, name := range sidebarItems {
		label := string(rune('1'+i)) + " " + name
		if name == base {
			label = activeTab.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "   ")
}

func (a *App) View() string {
	var b strings.Builder
	header := titleStyle.Render("Orderup")
	if a.user != nil {
		header += mutedStyle.Render("  " + a.user.Name)
	}
	if _, onLogin := a.top().(*loginScreen); !onLogin {
		header += "   " + a.sidebar()
	}
	b.WriteString(header + "\n\n")
	b.WriteString(a.top().View())
	if a.status != "" {
		st := successStyle
		if a.statusErr {
			st = errorStyle
		}
		b.WriteString("\n" + st.Render(a.status))
	}
	return panelString(lipgloss.NewStyle().MaxWidth(max(20, a.width-4)).Render(b.String()))
}
