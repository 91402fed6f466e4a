// Package webhook is the fire-and-forget outbound HTTPS POST collaborator
// described in spec §4.3: one background request per call, response logged
// and otherwise discarded, failures never propagate into room state.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/metrics"
	"github.com/corvino/textroom/internal/wire"
)

// requestTimeout bounds how long a single delivery attempt may run; the
// room actor never waits on it, but an unbounded client could otherwise pile
// up goroutines against a hung peer.
const requestTimeout = 10 * time.Second

// client is a single package-level http.Client reused by every Poster. A
// request-scoped client (as the original Rust builds per call) buys nothing
// in Go: transport connection pooling is the whole point of sharing one.
var client = &http.Client{Timeout: requestTimeout}

// Poster posts JSON payloads to a fixed URL. Create one lazily, only when a
// room's post URL is set.
type Poster struct {
	url    string
	room   string
	logger *zap.Logger
}

// New returns a Poster bound to url, only constructed when the room actually
// configures a webhook sink.
func New(url, room string, logger *zap.Logger) *Poster {
	return &Poster{url: url, room: room, logger: logger}
}

// Post encodes payload as JSON and fires the POST on a background goroutine.
// It returns immediately; the caller never observes success or failure.
func (p *Poster) Post(payload wire.WebhookPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("webhook: encode failed", zap.String("room", p.room), zap.Error(err))
		return
	}

	go p.deliver(payload.Type, body)
}

func (p *Poster) deliver(msgType string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		p.logger.Error("webhook: build request failed", zap.String("room", p.room), zap.Error(err))
		metrics.WebhookFailures.Inc()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		p.logger.Warn("webhook: post failed", zap.String("room", p.room), zap.String("type", msgType), zap.Error(err))
		metrics.WebhookFailures.Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("webhook: non-200 response",
			zap.String("room", p.room), zap.String("type", msgType), zap.Int("status", resp.StatusCode))
		metrics.WebhookFailures.Inc()
		return
	}
	p.logger.Debug("webhook: posted ok", zap.String("room", p.room), zap.String("type", msgType))
}
