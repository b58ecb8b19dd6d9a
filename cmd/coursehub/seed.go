package main

import (
	"fmt"
	"os"

	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/internal/infrastructure/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixtures into the database in one transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx := seed.Sample()
			if file != "" {
				var err error
				if fx, err = seed.LoadFile(file); err != nil {
					return err
				}
			}

			a, err := bootstrap(cmd.Context(), opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			sum, err := seed.NewSeeder(sqldb.NewUnitOfWorkFactory(a.store, a.log), a.log).Apply(cmd.Context(), fx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d row(s)\n", color.GreenString("seeded"), sum.Rows)
			fmt.Fprintf(out, "  instructors:   %d\n", sum.Instructors)
			fmt.Fprintf(out, "  courses:       %d\n", sum.Courses)
			fmt.Fprintf(out, "  students:      %d\n", sum.Students)
			fmt.Fprintf(out, "  lessons:       %d\n", sum.Lessons)
			fmt.Fprintf(out, "  exams:         %d (%d results)\n", sum.Exams, sum.ExamResults)
			fmt.Fprintf(out, "  registrations: %d\n", sum.Registrations)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture YAML file (default: built-in sample)")
	return cmd
}
