package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/services"
)

// ConfirmPresenceCmd creates the confirmPresence command
func ConfirmPresenceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmPresence <roster_id> <member_id>",
		Short: "Confirm a member's presence for their assigned duty",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := services.ConfirmPresence(app.Ctx, app.Database, app.Database, app.Notifier, app.Logger, args[0], args[1], time.Now())
			if err != nil {
				return err
			}

			entry := roster.EntryFor(args[1])
			fmt.Printf("\nPresence confirmed for %s (%s) at %s.\n\n",
				entry.MemberName, entry.Role, entry.ConfirmedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// MarkAbsentCmd creates the markAbsent command
func MarkAbsentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "markAbsent <roster_id> <member_id>",
		Short: "Administratively mark an assignee absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.MarkAbsent(app.Ctx, app.Database, app.Logger, args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("\nMember %s marked absent.\n\n", args[1])
			return nil
		},
	}
}
