package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/screening-backend/internal/service"
)

func newTokenCmd(state *cliState) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить admin токен для POST /retrain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if state.cfg.RetrainJWTSecret == "" {
				return fmt.Errorf("token: RETRAIN_JWT_SECRET не задан")
			}
			token, err := service.NewTokenManager(state.cfg.RetrainJWTSecret).Issue(subject, service.RoleAdmin, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "ops", "subject токена")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "срок действия")
	return cmd
}
