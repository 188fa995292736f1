package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/spf13/cobra"
)

func newHashPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash for admin.password_hash",
		Long: `Print the bcrypt hash to put in admin.password_hash
(or PORTFOLIO_ADMIN_PASSWORD_HASH).

The password is read from --password or, when omitted, from the first line
of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to hash")
	return cmd
}
