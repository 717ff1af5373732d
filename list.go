package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/msomdec/employee-pass/internal/service"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored employees",
		Long:  "Reads the employee collection straight from the configured storage backend and prints it as a table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, slots, db, err := openOffline(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			list, err := service.LoadCollection(ctx, slots)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				color.New(color.FgYellow).Fprintln(out, "No employees registered yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMPLOYEE ID\tREGISTERED")
			for _, e := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.EmployeeID, e.RegistrationDate)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "%d employee(s)\n", len(list))
			return nil
		},
	}
}
