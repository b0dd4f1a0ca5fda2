package main

import (
	"fmt"
	"strings"

	schema "assistant/db"
	gormrepo "assistant/internal/adapter/repo/gorm"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const tasksClearedMessage = "Tasks cleared successfully!"

func newTasksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect or clear the task list",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every task",
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := buildServices(cmd.Context(), opts.cfg, opts.logger)
				if err != nil {
					return err
				}
				defer svc.Close()
				text, err := svc.Tasks.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every task; ids are not reused",
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := buildServices(cmd.Context(), opts.cfg, opts.logger)
				if err != nil {
					return err
				}
				defer svc.Close()
				if err := svc.Tasks.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tasksClearedMessage)
				return nil
			},
		},
	)
	return cmd
}

func newRemindersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect reminders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices(cmd.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer svc.Close()
			text, err := svc.Reminders.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	})
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations to the postgres task store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Store.Driver != "postgres" {
				return fmt.Errorf("migrate needs store.driver=postgres, got %q", opts.cfg.Store.Driver)
			}
			db, err := openPostgres(opts.cfg.Store, opts.logger)
			if err != nil {
				return err
			}
			defer gormrepo.Close(db)

			applied, err := gormrepo.ApplyMigrations(cmd.Context(), db, schema.Migrations())
			if err != nil {
				return err
			}
			opts.logger.Info("migrations applied", zap.Strings("versions", applied))
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s.\n", strings.Join(applied, ", "))
			return nil
		},
	}
}
