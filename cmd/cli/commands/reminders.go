package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/services"
)

// ScheduleRemindersCmd creates the scheduleReminders command
func ScheduleRemindersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scheduleReminders <roster_id>",
		Short: "Record 24h and 1h reminders for a roster's assignees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ScheduleReminders(app.Ctx, app.Database, app.Database, app.Notifier, app.Logger, args[0], time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\nScheduled %d reminders (%d fire times already past).\n\n",
				result.Scheduled, result.Skipped)
			return nil
		},
	}
}

// DispatchRemindersCmd creates the dispatchReminders command. Scheduled
// notifications are only records until this drain runs; it is meant to
// be invoked from cron.
func DispatchRemindersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatchReminders",
		Short: "Deliver every notification whose fire time has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sent, err := app.Notifier.DispatchDue(app.Ctx, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\nDelivered %d notifications.\n\n", sent)
			return nil
		},
	}
}
