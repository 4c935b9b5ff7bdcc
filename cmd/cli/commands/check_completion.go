package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/services"
)

// CheckCompletionCmd creates the checkCompletion command
func CheckCompletionCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkCompletion <appointment_id>",
		Short: "Re-evaluate whether a poll has collected enough votes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID := args[0]
			app.Logger.Debug("checkCompletion command", zap.String("appointment_id", appointmentID))

			result, err := services.EvaluateCompletion(app.Ctx, app.Database, app.Logger, appointmentID)
			if err != nil {
				return err
			}

			if result.IsComplete {
				fmt.Printf("\n✅ Poll complete: %s\n", result.Reason)
				if result.CompletedDate != "" {
					fmt.Printf("   Qualifying date: %s (%d participants)\n", result.CompletedDate, result.ParticipantCount)
				}
			} else {
				fmt.Printf("\n⏳ Poll not complete yet\n")
			}
			return nil
		},
	}
}
