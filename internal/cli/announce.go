package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corvino/textroom/internal/wire"
)

func newAnnounceCmd() *cobra.Command {
	var msgType string

	cmd := &cobra.Command{
		Use:   "announce [text]",
		Short: "Post a moderator announcement to a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			if err := requireSecret(); err != nil {
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("announcement text is required")
			}
			frame := outboundAnnouncement{
				Kind: wire.KindAnnouncement,
				AnnouncementRequest: wire.AnnouncementRequest{
					Type:   msgType,
					Text:   strings.Join(args, " "),
					Secret: flagSecret,
				},
			}
			if err := dialAndSendOne(flagServer, flagRoom, frame); err != nil {
				return err
			}
			fmt.Println("announced")
			return nil
		},
	}

	cmd.Flags().StringVarP(&msgType, "type", "t", "announcement", "announcement type")
	return cmd
}
