package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/backup"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write every library record to a backup document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if len(args) == 0 || args[0] == "-" {
				return backup.Export(cmd.Context(), store, cmd.OutOrStdout(), time.Now())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := backup.Export(cmd.Context(), store, f, time.Now()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			a.logger.Info("export written", "path", args[0])
			return nil
		},
	}
}
