package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corvino/textroom/internal/room"
)

func newParticipantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List a room's connected participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			var participants []room.Participant
			if err := getJSON(actionURL(flagServer, flagRoom, "participants", nil), &participants); err != nil {
				return err
			}
			for _, p := range participants {
				username, display := "-", "-"
				if p.Username != nil {
					username = *p.Username
				}
				if p.Display != nil {
					display = *p.Display
				}
				fmt.Printf("%s (%s)\n", username, display)
			}
			return nil
		},
	}
}
