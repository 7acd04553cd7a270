package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/huh/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/petpost/petpost/internal/auth"
	"github.com/petpost/petpost/internal/ui/modals"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Long: `Signs in against the configured backend and stores the session token in
~/.petpost/storage.json. Missing credentials are prompted for when stdin is a
terminal.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// isInteractive reports whether prompts can be shown.
func isInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// promptCredentials asks for the email and password, keeping what was passed.
func promptCredentials(ctx context.Context, email, password *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		),
	).WithTheme(modals.ModalTheme()).RunWithContext(ctx)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}

	email, password := loginEmail, loginPassword
	if (strings.TrimSpace(email) == "" || password == "") && isInteractive() {
		if err := promptCredentials(contextOrBackground(cmd.Context()), &email, &password); err != nil {
			return err
		}
	}
	return login(cmd.Context(), svc.provider, email, password, cmd.OutOrStdout())
}

func login(ctx context.Context, p *auth.Provider, email, password string, out io.Writer) error {
	state, err := p.Login(contextOrBackground(ctx), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintf(out, "Logged in as %s\n", displayUser(state.UserID))
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	return logout(cmd.Context(), svc.provider, cmd.OutOrStdout())
}

func logout(ctx context.Context, p *auth.Provider, out io.Writer) error {
	if _, err := p.Logout(contextOrBackground(ctx)); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	return whoami(cmd.Context(), svc.provider, cmd.OutOrStdout())
}

func whoami(ctx context.Context, p *auth.Provider, out io.Writer) error {
	state := p.Resolve(contextOrBackground(ctx))
	if !state.IsAuthenticated {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	fmt.Fprintln(out, displayUser(state.UserID))
	return nil
}

// displayUser names a signed-in user whose ID the server did not return.
func displayUser(userID string) string {
	if userID == "" {
		return "(unknown user)"
	}
	return userID
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
