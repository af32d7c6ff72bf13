package main

import (
	"github.com/spf13/cobra"

	"github.com/ignatzorin/screening-backend/internal/config"
	"github.com/ignatzorin/screening-backend/internal/logger"
)

const appName = "screening"

// cliState конфигурация, загруженная до запуска подкоманды.
type cliState struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Сервис отбора кандидатов: предсказание и переобучение модели",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.Env)
			state.cfg = cfg
			return nil
		},
		// Без подкоманды запускается HTTP сервер.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), state.cfg)
		},
	}

	root.AddCommand(
		newServeCmd(state),
		newRetrainCmd(state),
		newSeedCmd(state),
		newTokenCmd(state),
	)
	return root
}
