package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/services"
)

// CancelRosterCmd creates the cancelRoster command
func CancelRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelRoster <roster_id>",
		Short: "Cancel a roster and notify its assignees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.CancelRoster(app.Ctx, app.Database, app.Database, app.Notifier, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nRoster %s cancelled.\n\n", args[0])
			return nil
		},
	}
}

// CompleteRosterCmd creates the completeRoster command
func CompleteRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "completeRoster <roster_id>",
		Short: "Mark a roster completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.CompleteRoster(app.Ctx, app.Database, app.Database, app.Notifier, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nRoster %s completed.\n\n", args[0])
			return nil
		},
	}
}

// DeleteRosterCmd creates the deleteRoster command
func DeleteRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteRoster <roster_id>",
		Short: "Delete a roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteRoster(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nRoster %s deleted.\n\n", args[0])
			return nil
		},
	}
}
