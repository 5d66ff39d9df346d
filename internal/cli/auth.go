package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/auth"
	"github.com/Makepad-fr/orderup/internal/ui"
)

func newAuthCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in and manage the stored token",
	}

	var cr api.Credentials
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		Long: `Log in with domain, username and password. Missing values are read
from stdin, one per line.`,
		Args: cobra.NoArgs,
		RunE: st.runE(func(ctx context.Context, _ []string) error {
			return st.login(ctx, cr)
		}),
	}
	login.Flags().StringVar(&cr.Domain, "domain", "", "store domain")
	login.Flags().StringVarP(&cr.Username, "username", "u", "", "user name")
	login.Flags().StringVarP(&cr.Password, "password", "p", "", "password (prefer stdin)")

	cmd.AddCommand(login,
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored token",
			Args:  cobra.NoArgs,
			RunE:  st.runE(st.logout),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the token comes from and when it expires",
			Args:  cobra.NoArgs,
			RunE:  st.runE(st.authStatus),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the user the token belongs to",
			Args:  cobra.NoArgs,
			RunE:  st.runE(st.whoami),
		},
		&cobra.Command{
			Use:   "refresh",
			Short: "Trade the token for a fresh one",
			Args:  cobra.NoArgs,
			RunE:  st.runE(st.refresh),
		},
	)
	return cmd
}

func (s *state) login(ctx context.Context, cr api.Credentials) error {
	in := bufio.NewScanner(s.stdin)
	ask := func(label string, v *string) error {
		if *v != "" {
			return nil
		}
		fmt.Fprintf(ui.Stderr, "%s: ", label)
		if !in.Scan() {
			return usagef("login: missing %s", strings.ToLower(label))
		}
		*v = strings.TrimSpace(in.Text())
		if *v == "" {
			return usagef("login: empty %s", strings.ToLower(label))
		}
		return nil
	}
	for _, f := range []struct {
		label string
		v     *string
	}{{"Domain", &cr.Domain}, {"Username", &cr.Username}, {"Password", &cr.Password}} {
		if err := ask(f.label, f.v); err != nil {
			return err
		}
	}

	sess, err := s.client.Login(ctx, cr)
	if err != nil {
		return err
	}
	if err := s.store.Set(sess.Token, sess.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info("logged in", zap.String("user", sess.User.ID))
	ui.OK("logged in as " + sess.User.Name)
	return nil
}

func (s *state) logout(ctx context.Context, _ []string) error {
	ti, err := s.store.Get()
	if err != nil {
		return err
	}
	if ti == nil {
		ui.OK("already logged out")
		return nil
	}
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("logout request failed", zap.Error(err))
	}
	if ti.Source == "env" {
		return fmt.Errorf("token comes from $%s; unset it to log out", auth.TokenEnv)
	}
	if err := s.store.Delete(); err != nil {
		return err
	}
	ui.OK("logged out")
	return nil
}

func (s *state) token() (*auth.TokenInfo, error) {
	ti, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	if ti == nil {
		return nil, &api.APIError{Status: 401, Message: "not logged in"}
	}
	return ti, nil
}

func (s *state) authStatus(_ context.Context, _ []string) error {
	ti, err := s.token()
	if err != nil {
		return err
	}
	t := ui.Current()
	lines := []string{
		ui.C(t.Title, "Authentication"),
		fmt.Sprintf("%s %s", ui.C(t.Muted, "source: "), ti.Source),
		fmt.Sprintf("%s %s", ui.C(t.Muted, "api:    "), s.cfg.BaseURL()),
	}
	switch {
	case ti.ExpiresAt == nil:
		lines = append(lines, ui.C(t.Muted, "expires: ")+"unknown")
	case ti.Expired(time.Now()):
		lines = append(lines, ui.C(t.Error, "expired "+ti.ExpiresAt.Local().Format(time.RFC1123)))
	default:
		left := time.Until(*ti.ExpiresAt).Round(time.Minute)
		lines = append(lines, fmt.Sprintf("%s %s (%s left)", ui.C(t.Muted, "expires:"),
			ti.ExpiresAt.Local().Format(time.RFC1123), left))
	}
	ui.Panel(lines)
	return nil
}

func (s *state) whoami(_ context.Context, _ []string) error {
	ti, err := s.token()
	if err != nil {
		return err
	}
	c, ok := auth.Claims(ti.Token)
	if !ok {
		return fmt.Errorf("token carries no user claims")
	}
	str := func(k string) string {
		v, _ := c[k].(string)
		if v == "" {
			return "-"
		}
		return v
	}
	fmt.Fprintf(ui.Stdout, "%s (%s)\n", str("name"), str("sub"))
	fmt.Fprintf(ui.Stdout, "%s %s   %s %s\n", ui.C(ui.Current().Muted, "role"), str("role"),
		ui.C(ui.Current().Muted, "store"), str("storeId"))
	return nil
}

func (s *state) refresh(ctx context.Context, _ []string) error {
	if _, err := s.token(); err != nil {
		return err
	}
	sess, err := s.client.Refresh(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Set(sess.Token, sess.ExpiresAt); err != nil {
		return err
	}
	ui.OK("token refreshed")
	return nil
}
