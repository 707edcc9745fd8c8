package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ViewRosterCmd creates the viewRoster command
func ViewRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRoster <roster_id>",
		Short: "Show a roster and the status of each assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.Database.GetRoster(app.Ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nRoster %s\n", roster.ID)
			fmt.Printf("Occurs at: %s\n", roster.OccursAt.Format("2006-01-02 15:04 (Monday)"))
			fmt.Printf("Status:    %s\n", roster.Status)
			if roster.Notes != "" {
				fmt.Printf("Notes:     %s\n", roster.Notes)
			}
			fmt.Println()

			for i, entry := range roster.Entries {
				line := fmt.Sprintf("  %2d. %-20s %s (%s) - %s", i+1, entry.Role, entry.MemberName, entry.MemberID, entry.Status)
				if entry.ReplacedBy != "" {
					line += fmt.Sprintf(" -> %s", entry.ReplacedBy)
				}
				if entry.Notes != "" {
					line += fmt.Sprintf(" [%s]", entry.Notes)
				}
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}
}

// ListRostersCmd creates the listRosters command
func ListRostersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRosters <ministry_id>",
		Short: "List all rosters for a ministry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosters, err := app.Database.ListRosters(app.Ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d rosters:\n\n", len(rosters))
			for _, r := range rosters {
				fmt.Printf("- %s  %s  %-10s  %d entries\n",
					r.ID, r.OccursAt.Format("2006-01-02 15:04"), r.Status, len(r.Entries))
			}
			fmt.Println()

			return nil
		},
	}
}
