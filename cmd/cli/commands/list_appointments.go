package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListAppointmentsCmd creates the listAppointments command
func ListAppointmentsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listAppointments",
		Short: "List all scheduling polls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appointments, err := app.Database.ListAppointments(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n📋 Appointments (%d)\n\n", len(appointments))
			for _, a := range appointments {
				fmt.Printf("  %s  %-16s %-10s %s\n", a.ID, a.Method, a.Status, a.Title)
			}
			fmt.Println()
			return nil
		},
	}
}
