// Package cli implements textroom-cli, a thin HTTP/WebSocket client driving
// the surface described in spec §4.7/§6, structured the way the teacher's
// internal/cli package is: one newXCmd() *cobra.Command per verb sharing
// persistent server/room flags.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagRoom   string
	flagSecret string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "textroom-cli",
		Short: "CLI for the textroom chat server",
	}

	root.PersistentFlags().StringVarP(&flagServer, "server", "s", envOrDefault("TEXTROOM_SERVER", "http://localhost:9339"), "server base URL")
	root.PersistentFlags().StringVarP(&flagRoom, "room", "r", envOrDefault("TEXTROOM_ROOM", ""), "room uid")
	root.PersistentFlags().StringVar(&flagSecret, "secret", envOrDefault("TEXTROOM_SECRET", ""), "room moderator secret")

	root.AddCommand(
		newCreateCmd(),
		newDestroyCmd(),
		newStatusCmd(),
		newCountCmd(),
		newParticipantsCmd(),
		newPhotoCmd(),
		newAnnounceCmd(),
		newBanCmd(),
		newJoinCmd(),
	)

	return root
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireRoom() error {
	if flagRoom == "" {
		return fmt.Errorf("room is required (use -r or TEXTROOM_ROOM)")
	}
	return nil
}

func requireSecret() error {
	if flagSecret == "" {
		return fmt.Errorf("secret is required (use --secret or TEXTROOM_SECRET)")
	}
	return nil
}
