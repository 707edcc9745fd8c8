package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/services"
)

// GenerateRosterCmd creates the generateRoster command
func GenerateRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRoster <ministry_id>",
		Short: "Generate the next duty roster for a ministry in rotation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ministryID := args[0]
			dateStr, _ := cmd.Flags().GetString("date")

			var occursAt time.Time
			if dateStr != "" {
				var err error
				// Date-only input takes the configured service time
				occursAt, err = time.Parse("2006-01-02 15:04", dateStr+" "+app.Cfg.ServiceTime)
				if err != nil {
					occursAt, err = time.Parse("2006-01-02 15:04", dateStr)
					if err != nil {
						return fmt.Errorf("invalid date %q, expected YYYY-MM-DD or \"YYYY-MM-DD HH:MM\": %w", dateStr, err)
					}
				}
			}

			result, err := services.GenerateRoster(app.Ctx, app.Database, app.Database, app.Database, app.Directory, app.Notifier, app.Logger, ministryID, occursAt)
			if err != nil {
				return err
			}

			roster := result.Roster
			fmt.Printf("\nRoster generated!\n\n")
			fmt.Printf("Roster ID:  %s\n", roster.ID)
			fmt.Printf("Occurs at:  %s\n", roster.OccursAt.Format("2006-01-02 15:04 (Monday)"))
			fmt.Printf("Status:     %s\n\n", roster.Status)

			fmt.Printf("Assignments:\n")
			for i, entry := range roster.Entries {
				fmt.Printf("  %2d. %-20s %s (%s)\n", i+1, entry.Role, entry.MemberName, entry.MemberID)
			}
			fmt.Println()

			if result.RemindersScheduled > 0 {
				fmt.Printf("Scheduled %d reminders.\n", result.RemindersScheduled)
			}
			if len(result.FailedNotifications) > 0 {
				fmt.Printf("Could not notify %d assignees (see logs).\n", len(result.FailedNotifications))
			}

			return nil
		},
	}

	cmd.Flags().String("date", "", "Occurrence date (defaults to the next date from the recurrence rule)")

	return cmd
}
