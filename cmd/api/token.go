package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"medicine-reminder/internal/adapters/auth/jwtauth"
	"medicine-reminder/internal/config"
)

var (
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a bearer token signed with JWT_SECRET (local testing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		v, err := jwtauth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			return err
		}
		token, err := v.Issue(args[0], tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime (0 = no expiry)")
}
