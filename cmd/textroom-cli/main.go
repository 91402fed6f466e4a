// Command textroom-cli is a thin HTTP/WebSocket client for a textroomd
// server, grounded in the teacher's cmd/claudetalk/main.go shape: all the
// real work lives in internal/cli, main just calls Execute.
package main

import "github.com/corvino/textroom/internal/cli"

func main() {
	cli.Execute()
}
