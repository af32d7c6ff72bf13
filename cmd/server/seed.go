package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/screening-backend/internal/service"
)

func newSeedCmd(state *cliState) *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Заполнить базу синтетическими кандидатурами",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if state.cfg.Env == "production" {
				return fmt.Errorf("seed: запрещено в production")
			}
			if count <= 0 {
				return fmt.Errorf("seed: --count должно быть > 0")
			}

			a, err := newApp(cmd.Context(), state.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			inserted, err := service.NewSeedService(a.repo).Seed(cmd.Context(), count, seed)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "добавлено кандидатур: %d\n", inserted)
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 200, "количество кандидатур")
	cmd.Flags().Int64Var(&seed, "seed", 42, "seed генератора")
	return cmd
}
