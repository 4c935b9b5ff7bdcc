package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/core/services"
)

// CreateAppointmentCmd creates the createAppointment command
func CreateAppointmentCmd(app *AppContext) *cobra.Command {
	var (
		method               string
		requiredParticipants int
		weeklyMeetings       int
		startDate            string
		endDate              string
	)

	cmd := &cobra.Command{
		Use:   "createAppointment <title>",
		Short: "Create a new scheduling poll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("createAppointment command",
				zap.String("title", args[0]),
				zap.String("method", method))

			appointment, err := services.CreateAppointment(app.Ctx, app.Database, app.Logger, services.CreateAppointmentParams{
				Title:                args[0],
				Method:               model.Method(method),
				RequiredParticipants: requiredParticipants,
				WeeklyMeetings:       weeklyMeetings,
				StartDate:            startDate,
				EndDate:              endDate,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n📅 Appointment created\n\n")
			fmt.Printf("ID:        %s\n", appointment.ID)
			fmt.Printf("Title:     %s\n", appointment.Title)
			fmt.Printf("Method:    %s\n", appointment.Method)
			fmt.Printf("Required:  %d participants\n", appointment.RequiredParticipants)
			if appointment.Method == model.MethodRecurring {
				fmt.Printf("Meetings:  %d per week\n", appointment.WeeklyMeetings)
			}
			if appointment.StartDate != "" {
				fmt.Printf("Window:    %s to %s\n", appointment.StartDate, appointment.EndDate)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", string(model.MethodAllAvailable),
		"scheduling method: all-available, max-available, minimum-required, time-scheduling, recurring")
	cmd.Flags().IntVarP(&requiredParticipants, "required", "r", 1, "required participant count")
	cmd.Flags().IntVarP(&weeklyMeetings, "weekly-meetings", "w", 0, "meetings per week (recurring only)")
	cmd.Flags().StringVar(&startDate, "start", "", "first candidate date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "last candidate date (YYYY-MM-DD)")

	return cmd
}
