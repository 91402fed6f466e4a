package client

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// inboundStreamWorker reads the socket until it closes or errors, awaiting
// OnMessageReceived for each frame it cares about. When the stream ends it
// issues Close.
func inboundStreamWorker(ctx context.Context, conn Conn, ctrl *Controller, logger *zap.Logger) {
	conn.SetPongHandler(func(string) error {
		// Runs synchronously on this goroutine, same as any other frame.
		ctrl.OnMessageReceived(ctx, framePong, nil)
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}

		switch messageType {
		case websocket.TextMessage:
			ctrl.OnMessageReceived(ctx, frameText, payload)
		case websocket.CloseMessage:
			ctrl.OnMessageReceived(ctx, frameClose, payload)
		case websocket.PingMessage:
			// The peer is expected to respond to our pings, not the
			// converse; ignore inbound pings entirely.
		case websocket.BinaryMessage:
			logger.Debug("ignoring binary frame", zap.Int("bytes", len(payload)))
			// binary and continuation frames are ignored per spec §4.4.
		}
	}

	ctrl.Close(context.Background())
}

// pingWorker ticks every interval, issuing SendPing; it stops once SendPing
// reports the client is no longer alive.
func pingWorker(ctx context.Context, ctrl *Controller, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			alive, err := ctrl.SendPing(ctx, now)
			if err != nil || !alive {
				return
			}
		}
	}
}
