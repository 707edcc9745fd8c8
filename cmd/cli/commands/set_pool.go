package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasmdrs/escala/pkg/core/services"
)

// SetPoolCmd creates the setPool command
func SetPoolCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setPool <ministry_id> <member_id>...",
		Short: "Replace a ministry's eligible-member pool (resets the rotation)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ministryID := args[0]
			members := args[1:]

			ministry, err := services.SetPool(app.Ctx, app.Database, app.Database, app.Logger, ministryID, members)
			if err != nil {
				return err
			}

			fmt.Printf("\nPool updated for %s: %d members, rotation reset to the top.\n\n",
				ministry.Name, len(ministry.Members))
			return nil
		},
	}
}
