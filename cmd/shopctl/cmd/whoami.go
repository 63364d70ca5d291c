package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth("whoami"); err != nil {
			return err
		}
		u := a.sessions.Current().User
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:     %s\n", u.ID)
		fmt.Fprintf(out, "Email:  %s\n", u.Email)
		fmt.Fprintf(out, "Name:   %s\n", u.FullName)
		fmt.Fprintf(out, "Role:   %s\n", u.Role)
		fmt.Fprintf(out, "Status: %s\n", u.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
