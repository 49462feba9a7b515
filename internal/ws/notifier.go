// Package ws implements the live-update push channel. Each connected
// client gets its own timer that pushes a fixed-shape notification at a
// configured interval until the client disconnects.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const writeWait = 10 * time.Second

var liveUpdateConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "nasa_live_update_connections",
	Help: "Current number of connected live-update clients",
})

// Message is the fixed-shape live-update notification.
type Message struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// newPhotosMessage builds the canned notification with the current time.
func newPhotosMessage() Message {
	return Message{
		Type:      "new_photos",
		Message:   "New space photos available!",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Notifier upgrades HTTP connections and runs a per-connection push timer.
type Notifier struct {
	interval time.Duration
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewNotifier creates a notifier pushing at the given interval.
func NewNotifier(interval time.Duration) *Notifier {
	return &Notifier{
		interval: interval,
		upgrader: websocket.Upgrader{
			// CORS policy is enforced at the router; the upgrade itself
			// accepts any origin, matching the open data-proxy surface.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: log.With().Str("component", "live-updates").Logger(),
	}
}

// Handler returns the HTTP handler performing the websocket upgrade.
func (n *Notifier) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := n.upgrader.Upgrade(w, r, nil)
		if err != nil {
			n.logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		go n.serve(conn)
	}
}

// serve pushes one notification per tick until the connection goes away.
// The timer is cancelled explicitly on disconnect; there is no buffering,
// no replay, and no retry.
func (n *Notifier) serve(conn *websocket.Conn) {
	liveUpdateConnections.Inc()
	n.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("live-update client connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		_ = conn.Close()
		liveUpdateConnections.Dec()
		n.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("live-update client disconnected")
	}()

	// Reader goroutine: we never act on client messages, but reading is
	// required to observe close frames and connection loss.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(newPhotosMessage()); err != nil {
				return
			}
		}
	}
}
