package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/calendar"
	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/core/services"
	"github.com/moyeo-app/moyeo/pkg/core/timeslot"
)

// ViewResultsCmd creates the viewResults command
func ViewResultsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewResults <appointment_id>",
		Short: "Show aggregated availability results for a poll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID := args[0]
			app.Logger.Debug("viewResults command", zap.String("appointment_id", appointmentID))

			results, err := services.GetResults(app.Ctx, app.Database, app.Logger, appointmentID, services.ResultsOptions{
				TopRangeLimit: app.Cfg.TopRangeLimit,
				UpcomingWeeks: app.Cfg.UpcomingWeeks,
			})
			if err != nil {
				return err
			}

			appointment := results.Appointment
			fmt.Printf("\n📊 Results: %s\n\n", appointment.Title)
			fmt.Printf("Method:        %s\n", appointment.Method)
			fmt.Printf("Status:        %s\n", appointment.Status)
			fmt.Printf("Total Voters:  %d\n", results.TotalVoters)
			fmt.Printf("Total Votes:   %d\n", results.Results.Statistics.TotalVotes)
			fmt.Printf("Avg per Voter: %.2f\n", results.Results.Statistics.AvgVotesPerVoter)
			fmt.Printf("Most Popular:  %s\n\n", results.Results.Statistics.MostPopularOption)

			printResultSection("Everyone available", results.Results.AllAvailable)
			printResultSection(fmt.Sprintf("At least %d available", appointment.RequiredParticipants), results.Results.RequiredAvailable)
			printResultSection("Best options", results.Results.MaxAvailable)

			if appointment.Method == model.MethodTimeScheduling {
				printSlotRanges(results.Results.OptimalSlots)
				if best := results.Results.OptimalRange; best != nil {
					fmt.Printf("Best overall block: %s %s-%s (%d min, %d people)\n\n",
						best.Date, best.StartTime, best.EndTime, timeslot.Duration(*best), best.Count)
				}
			}

			if len(results.UpcomingMeetings) > 0 {
				fmt.Printf("Upcoming meeting dates:\n")
				for _, meeting := range results.UpcomingMeetings {
					fmt.Printf("  %-9s -> %s\n", model.WeekdayName(meeting.Weekday), meeting.Date)
				}
				fmt.Println()
			}

			printHeatmap(results.Results.RequiredAvailable)
			return nil
		},
	}
}

func printResultSection(title string, results []model.VoteResult) {
	fmt.Printf("%s:\n", title)
	if len(results) == 0 {
		fmt.Printf("  (none)\n\n")
		return
	}
	for _, r := range results {
		fmt.Printf("  %-22s %3d votes (%3d%%)  %s\n",
			resultLabel(r), r.Count, r.Percentage, strings.Join(r.Voters, ", "))
	}
	fmt.Println()
}

func printSlotRanges(ranges []model.SlotRange) {
	fmt.Printf("Top contiguous time ranges:\n")
	if len(ranges) == 0 {
		fmt.Printf("  (none)\n\n")
		return
	}
	for i, r := range ranges {
		fmt.Printf("  %d. %s %s-%s (%d min) — %d people: %s\n",
			i+1, r.Date, r.StartTime, r.EndTime, timeslot.Duration(r), r.Count, strings.Join(r.Voters, ", "))
	}
	fmt.Println()
}

// printHeatmap renders a one-line calendar intensity strip for voted dates.
func printHeatmap(results []model.VoteResult) {
	cells := calendar.HeatmapByDate(results)
	if len(cells) == 0 {
		return
	}
	shades := []string{"·", "░", "▒", "▓", "█"}
	fmt.Printf("Calendar intensity:\n")
	for _, r := range results {
		if r.Date == "" {
			continue
		}
		fmt.Printf("  %s %s\n", shades[cells[r.Date]], r.Date)
	}
	fmt.Println()
}

func resultLabel(r model.VoteResult) string {
	if r.Time != "" {
		return r.Date + " " + r.Time
	}
	if r.Date != "" {
		return r.Date
	}
	return model.WeekdayName(r.Weekday)
}
