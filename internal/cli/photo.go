package cli

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newPhotoCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Print the registered photo URL for a participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			if username == "" {
				return fmt.Errorf("username is required (use --username)")
			}
			q := url.Values{"username": {username}}
			resp, err := noRedirectClient.Get(actionURL(flagServer, flagRoom, "photo", q))
			if err != nil {
				return fmt.Errorf("GET: %w", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusFound {
				fmt.Println(resp.Header.Get("Location"))
				return nil
			}
			return serverError(resp)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "participant username")
	return cmd
}

// noRedirectClient mirrors the server's 302-or-404 photo contract instead
// of silently following the redirect.
var noRedirectClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}
