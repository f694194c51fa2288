package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/joe-black-jb/mops-revenue/internal/api"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the /api endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.APITokenSecret == "" {
			return errors.New("API_TOKEN_SECRET is not set")
		}
		token, err := api.IssueToken(cfg.APITokenSecret, tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		cmd.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "batch", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
