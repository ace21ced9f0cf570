package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		admin  bool
		secret string
		ttl    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the payroll API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET_KEY")
			}
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET_KEY is required")
			}

			token, expiresAt, err := jwt.NewJWTService(secret, ttl).GenerateAccessToken(userID, admin)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID placed in the token")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant admin access")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default $JWT_SECRET_KEY)")
	cmd.Flags().StringVar(&ttl, "ttl", "1h", "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
