package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soaringjerry/Sondage/internal/api"
)

var (
	migrateFrom  string
	migrateForce bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import a browser localStorage dump into the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" {
			return errors.New("--from is required")
		}
		snap, err := api.LoadLegacyDump(migrateFrom)
		if err != nil {
			return fmt.Errorf("load legacy dump: %w", err)
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		logger.Info("starting one-time data migration", zap.String("from", migrateFrom),
			zap.Int("sections", len(snap.Sections)), zap.Int("responses", len(snap.Responses)))
		if err := api.ImportLegacy(ctx, store, snap, migrateForce); err != nil {
			if errors.Is(err, api.ErrAlreadyInitialized) {
				logger.Info("store already initialized; skipping (use --force to overwrite)")
				return nil
			}
			return fmt.Errorf("import: %w", err)
		}
		logger.Info("data migration completed")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "localStorage dump (JSON object of surveyUser, surveySections, surveyResponses)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite an existing survey definition")
}
