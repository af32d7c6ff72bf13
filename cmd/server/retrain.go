package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/screening-backend/internal/goroutine"
)

func newRetrainCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "retrain",
		Short: "Переобучить модель по данным базы и сохранить артефакт",
		Long: "Однократное переобучение без HTTP сервера. Публикация в git, если включена,\n" +
			"выполняется синхронно до завершения команды.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), state.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.retrainService(nil, goroutine.Run)
			if err != nil {
				return err
			}
			result, err := svc.Retrain(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
