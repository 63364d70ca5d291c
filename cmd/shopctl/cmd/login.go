package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopforge/shopctl/internal/domain/session"
)

var loginEmail string
var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the admin API",
	Long: `Log in to the admin API and persist the session.

Credentials can be passed via flags, the SHOPCTL_PASSWORD environment
variable, or entered interactively. Note that the interactive password
prompt echoes; prefer the environment variable on shared terminals.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (or set SHOPCTL_PASSWORD)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// Already logged in means there is nothing to do here; log out first.
	if d := session.PublicOnly(a.sessions.Current()); !d.Allowed {
		cur := a.sessions.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "already logged in as %s; run 'shopctl logout' first\n", cur.User.Email)
		return nil
	}

	email := loginEmail
	if email == "" {
		if email, err = promptLine(cmd, "email"); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		password = os.Getenv("SHOPCTL_PASSWORD")
	}
	if password == "" {
		if password, err = promptLine(cmd, "password"); err != nil {
			return err
		}
	}

	sess, err := a.client.Login(cmd.Context(), email, password)
	if err != nil {
		return friendly(err)
	}
	if err := a.sessions.Establish(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", sess.User.Email, sess.User.Role)
	return nil
}
