package main

import (
	"fmt"
	"os"

	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := bootstrap(cmd.Context(), opts, os.Stderr)
				if err != nil {
					return err
				}
				defer a.close()

				n, err := sqldb.NewMigrator(a.store).Migrate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last applied migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := bootstrap(cmd.Context(), opts, os.Stderr)
				if err != nil {
					return err
				}
				defer a.close()

				version, err := sqldb.NewMigrator(a.store).Rollback(cmd.Context())
				if err != nil {
					return err
				}
				if version == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to roll back")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back migration %d\n", version)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := bootstrap(cmd.Context(), opts, os.Stderr)
				if err != nil {
					return err
				}
				defer a.close()

				migrations, err := sqldb.NewMigrator(a.store).Status(cmd.Context())
				if err != nil {
					return err
				}

				applied := color.New(color.FgGreen).SprintFunc()
				pending := color.New(color.FgYellow).SprintFunc()

				out := cmd.OutOrStdout()
				for _, m := range migrations {
					if m.IsApplied {
						fmt.Fprintf(out, "%04d  %-32s %s  %s\n", m.Version, m.Name, applied("applied"), m.AppliedAt.Format("2006-01-02 15:04:05"))
						continue
					}
					fmt.Fprintf(out, "%04d  %-32s %s\n", m.Version, m.Name, pending("pending"))
				}
				return nil
			},
		},
	)
	return cmd
}
