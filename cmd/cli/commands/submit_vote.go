package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/services"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// SubmitVoteCmd creates the submitVote command
func SubmitVoteCmd(app *AppContext) *cobra.Command {
	var (
		dates    []string
		slots    []string
		weekdays []int
	)

	cmd := &cobra.Command{
		Use:   "submitVote <appointment_id> <voter_name>",
		Short: "Submit (or replace) a voter's availability selection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID, voterName := args[0], args[1]

			app.Logger.Debug("submitVote command",
				zap.String("appointment_id", appointmentID),
				zap.String("voter", voterName))

			votes, err := buildVoteSet(dates, slots, weekdays)
			if err != nil {
				return err
			}

			result, err := services.SubmitVote(app.Ctx, app.Database, app.Logger, services.SubmitVoteParams{
				AppointmentID: appointmentID,
				VoterName:     voterName,
				Votes:         votes,
			})
			if err != nil {
				return err
			}

			if result.NewVoter {
				fmt.Printf("\n🗳  Vote recorded for new voter %s\n", result.Voter.Name)
			} else {
				fmt.Printf("\n🗳  Vote replaced for %s\n", result.Voter.Name)
			}

			if result.Completion != nil && result.Completion.IsComplete {
				fmt.Printf("\n✅ Poll is complete: %s\n", result.Completion.Reason)
				if result.Completion.CompletedDate != "" {
					fmt.Printf("   Qualifying date: %s\n", result.Completion.CompletedDate)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&dates, "date", "d", nil, "available date (YYYY-MM-DD), repeatable")
	cmd.Flags().StringSliceVarP(&slots, "slot", "s", nil, "available half-hour slot (YYYY-MM-DD@HH:MM), repeatable")
	cmd.Flags().IntSliceVarP(&weekdays, "weekday", "w", nil, "available weekday (0=Sunday..6=Saturday), repeatable")

	return cmd
}

// buildVoteSet converts the flag values into a vote selection.
func buildVoteSet(dates, slots []string, weekdays []int) (db.VoteSet, error) {
	votes := db.VoteSet{Dates: dates, Weekdays: weekdays}
	for _, raw := range slots {
		parts := strings.SplitN(raw, "@", 2)
		if len(parts) != 2 {
			return db.VoteSet{}, fmt.Errorf("invalid slot %q, expected YYYY-MM-DD@HH:MM", raw)
		}
		votes.Slots = append(votes.Slots, db.TimeSelection{Date: parts[0], Time: parts[1]})
	}
	for _, weekday := range weekdays {
		if weekday < 0 || weekday > 6 {
			return db.VoteSet{}, fmt.Errorf("invalid weekday %d, expected 0..6", weekday)
		}
	}
	return votes, nil
}
