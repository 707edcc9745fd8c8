package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/services"
)

// RequestSubstitutionCmd creates the requestSubstitution command
func RequestSubstitutionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestSubstitution <roster_id> <original_member_id> <replacement_member_id>",
		Short: "Replace a pending assignee with another eligible member",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			roster, err := services.RequestSubstitution(app.Ctx, app.Database, app.Database, app.Directory, app.Notifier, app.Logger, args[0], args[1], args[2], reason)
			if err != nil {
				return err
			}

			replacement := roster.EntryFor(args[2])
			fmt.Printf("\nSubstitution applied: %s now covers %s.\n\n",
				replacement.MemberName, replacement.Role)
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason recorded on the substituted entry")

	return cmd
}
