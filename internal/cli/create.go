package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var (
		post      string
		postTypes []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			if err := requireSecret(); err != nil {
				return err
			}
			q := url.Values{"secret": {flagSecret}}
			if post != "" {
				q.Set("post", post)
			}
			if len(postTypes) > 0 {
				q.Set("postTypes", strings.Join(postTypes, ","))
			}
			if err := postForEffect(actionURL(flagServer, flagRoom, "create", q)); err != nil {
				return err
			}
			fmt.Printf("created room %q\n", flagRoom)
			return nil
		},
	}

	cmd.Flags().StringVar(&post, "post", "", "webhook URL for message/announcement events")
	cmd.Flags().StringSliceVar(&postTypes, "post-types", nil, "message types eligible for webhook posts")

	return cmd
}
