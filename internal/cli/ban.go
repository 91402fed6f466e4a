package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corvino/textroom/internal/wire"
)

func newBanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ban [username]",
		Short: "Remove a participant from a room by username",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			if err := requireSecret(); err != nil {
				return err
			}
			if len(args) != 1 {
				return fmt.Errorf("exactly one username is required")
			}
			frame := outboundBan{
				Kind: wire.KindBan,
				BanRequest: wire.BanRequest{
					Username: args[0],
					Secret:   flagSecret,
				},
			}
			if err := dialAndSendOne(flagServer, flagRoom, frame); err != nil {
				return err
			}
			fmt.Printf("banned %q\n", args[0])
			return nil
		},
	}
}
