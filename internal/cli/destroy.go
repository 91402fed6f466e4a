package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy",
		Short: "Destroy a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			if err := requireSecret(); err != nil {
				return err
			}
			q := url.Values{"secret": {flagSecret}}
			if err := postForEffect(actionURL(flagServer, flagRoom, "destroy", q)); err != nil {
				return err
			}
			fmt.Printf("destroyed room %q\n", flagRoom)
			return nil
		},
	}
}
