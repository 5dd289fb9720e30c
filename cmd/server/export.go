package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soaringjerry/Sondage/internal/api"
	"github.com/soaringjerry/Sondage/internal/middleware"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the responses CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		app, err := api.NewApp(ctx, api.Deps{
			Store:    store,
			Admins:   cfg.Admins,
			Seed:     cfg.Seed,
			Tokens:   middleware.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
			Location: cfg.Location,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		name, data, err := app.Export()
		if err != nil {
			return err
		}
		if exportOut != "" {
			name = exportOut
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		logger.Info("export written", zap.String("file", name), zap.Int("bytes", len(data)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default responses_YYYY-MM-DD.csv)")
}
