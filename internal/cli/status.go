package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corvino/textroom/internal/room"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show room status, or every room if -r is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagRoom == "" {
				var infos []room.Info
				if err := getJSON(actionURL(flagServer, "", "status", nil), &infos); err != nil {
					return err
				}
				for _, info := range infos {
					printRoomInfo(info)
				}
				return nil
			}
			var info room.Info
			if err := getJSON(actionURL(flagServer, flagRoom, "status", nil), &info); err != nil {
				return err
			}
			printRoomInfo(info)
			return nil
		},
	}
}

func printRoomInfo(info room.Info) {
	fmt.Printf("%s: %d participants, %d messages\n", info.Room, len(info.Participants), info.Messages)
}
