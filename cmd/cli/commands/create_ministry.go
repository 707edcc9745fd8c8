package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/core/services"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	weekday, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return weekday, nil
}

// CreateMinistryCmd creates the createMinistry command
func CreateMinistryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createMinistry <name>",
		Short: "Register a new ministry with its duty roles and member pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			roles, _ := cmd.Flags().GetStringSlice("roles")
			members, _ := cmd.Flags().GetStringSlice("members")
			kind, _ := cmd.Flags().GetString("recurrence")
			weekdayName, _ := cmd.Flags().GetString("weekday")
			monthDay, _ := cmd.Flags().GetInt("month-day")

			recurrence := model.Recurrence{Kind: model.RecurrenceKind(kind), MonthDay: monthDay}
			if recurrence.Kind != model.RecurrenceMonthly {
				weekday, err := parseWeekday(weekdayName)
				if err != nil {
					return err
				}
				recurrence.Weekday = weekday
			}

			ministry, err := services.CreateMinistry(app.Ctx, app.Database, app.Database, app.Logger, name, roles, members, recurrence)
			if err != nil {
				return err
			}

			fmt.Printf("\nMinistry created!\n\n")
			fmt.Printf("ID:      %s\n", ministry.ID)
			fmt.Printf("Name:    %s\n", ministry.Name)
			fmt.Printf("Roles:   %s\n", strings.Join(ministry.Roles, ", "))
			fmt.Printf("Members: %d\n\n", len(ministry.Members))

			return nil
		},
	}

	cmd.Flags().StringSlice("roles", nil, "Duty roles to fill each occurrence, in order")
	cmd.Flags().StringSlice("members", nil, "Eligible member ids, in rotation order")
	cmd.Flags().String("recurrence", "weekly", "Recurrence kind: weekly, biweekly, or monthly")
	cmd.Flags().String("weekday", "sunday", "Weekday for weekly/biweekly recurrence")
	cmd.Flags().Int("month-day", 1, "Day of month for monthly recurrence")

	return cmd
}
