// Command textroomd runs the textroom chat server: a single long-running
// process with no subcommands (spec §6), grounded in the teacher's
// cmd/server/main.go shape (flags, graceful shutdown on SIGINT/SIGTERM).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/config"
	"github.com/corvino/textroom/internal/httpapi"
	"github.com/corvino/textroom/internal/registry"
)

func main() {
	var (
		host         string
		port         int
		pingInterval time.Duration
	)

	defaults := config.Load(".env")

	root := &cobra.Command{
		Use:   "textroomd",
		Short: "textroom chat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(host, port, pingInterval)
		},
	}
	root.Flags().StringVar(&host, "host", defaults.Host, "bind host")
	root.Flags().IntVar(&port, "port", defaults.Port, "listen port")
	root.Flags().DurationVar(&pingInterval, "ping-interval", defaults.PingInterval, "socket ping interval")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(host string, port int, pingInterval time.Duration) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	reg := registry.Run(logger)
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := httpapi.New(addr, reg, logger, pingInterval)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("textroomd listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
