package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/model"
)

// ListMinistriesCmd creates the listMinistries command
func ListMinistriesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listMinistries",
		Short: "List all registered ministries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ministries, err := app.Database.ListMinistries(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list ministries: %w", err)
			}

			fmt.Printf("\nFound %d ministries:\n\n", len(ministries))
			for _, m := range ministries {
				status := "active"
				if !m.Active {
					status = "inactive"
				}
				fmt.Printf("- %s (%s) - %s - %s - roles: %s - pool: %d\n",
					m.Name,
					m.ID,
					status,
					describeRecurrence(m.Recurrence),
					strings.Join(m.Roles, ", "),
					len(m.Members),
				)
			}

			return nil
		},
	}
}

func describeRecurrence(r model.Recurrence) string {
	switch r.Kind {
	case model.RecurrenceWeekly:
		return fmt.Sprintf("weekly on %s", r.Weekday)
	case model.RecurrenceBiweekly:
		return fmt.Sprintf("biweekly on %s", r.Weekday)
	case model.RecurrenceMonthly:
		return fmt.Sprintf("monthly on day %d", r.MonthDay)
	default:
		return string(r.Kind)
	}
}
