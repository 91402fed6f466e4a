package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of connected participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			var body struct {
				Count int `json:"count"`
			}
			if err := getJSON(actionURL(flagServer, flagRoom, "count", nil), &body); err != nil {
				return err
			}
			fmt.Println(body.Count)
			return nil
		},
	}
}
