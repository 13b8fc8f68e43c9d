// Package remote implements the best-effort multiplayer town link: outbound
// consumption events are fire-and-forget, inbound notices are independent
// facts with no ordering guarantees. The simulation never blocks on a peer
// and never rolls back local state for a remote failure.
package remote

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/talgya/tiny-town/internal/engine"
)

const (
	outboundQueueCap = 64
	reconnectBackoff = 5 * time.Second
	writeTimeout     = 3 * time.Second
)

// consumeMsg is the wire shape of an outbound consumption event.
type consumeMsg struct {
	Kind         string `json:"kind"` // Always "consume"
	SessionID    string `json:"session_id"`
	AgentID      uint64 `json:"agent_id"`
	RemoteTownID string `json:"remote_town_id,omitempty"`
	VenueID      string `json:"venue_id"`
	Amount       int    `json:"amount"`
}

// noticeMsg is the wire shape of an inbound peer notice.
type noticeMsg struct {
	Kind      string `json:"kind"` // "arrived", "departed", "revenue"
	AgentName string `json:"agent_name,omitempty"`
	TownID    string `json:"town_id,omitempty"`
	Amount    int    `json:"amount,omitempty"`
}

// WSLink connects to a peer hub over a websocket. It satisfies
// engine.RemoteLink.
type WSLink struct {
	url       string
	sessionID string

	out chan consumeMsg

	mu      sync.Mutex
	notices []engine.RemoteNotice

	done chan struct{}
}

// Dial starts a link to the given hub URL. The connection is managed in
// the background; a hub that is down just means events get dropped.
func Dial(url string) *WSLink {
	l := &WSLink{
		url:       url,
		sessionID: uuid.New().String(),
		out:       make(chan consumeMsg, outboundQueueCap),
		done:      make(chan struct{}),
	}
	go l.run()
	return l
}

// Close tears down the link.
func (l *WSLink) Close() {
	close(l.done)
}

// AttemptConsume queues an outbound consumption event. When the queue is
// full the event is dropped; the tick must never wait on the network.
func (l *WSLink) AttemptConsume(agentID uint64, remoteTownID, venueID string, amount int) {
	msg := consumeMsg{
		Kind:         "consume",
		SessionID:    l.sessionID,
		AgentID:      agentID,
		RemoteTownID: remoteTownID,
		VenueID:      venueID,
		Amount:       amount,
	}
	select {
	case l.out <- msg:
	default:
		slog.Debug("remote queue full, dropping consume event", "agent_id", agentID)
	}
}

// Notices drains and returns the inbound notices received since last call.
func (l *WSLink) Notices() []engine.RemoteNotice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.notices
	l.notices = nil
	return out
}

// run maintains the connection, reconnecting with a flat backoff.
func (l *WSLink) run() {
	for {
		select {
		case <-l.done:
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.Dial(l.url, nil)
		if err != nil {
			slog.Debug("remote hub unreachable", "url", l.url, "error", err)
			select {
			case <-time.After(reconnectBackoff):
				continue
			case <-l.done:
				return
			}
		}
		slog.Info("connected to remote hub", "url", l.url, "session", l.sessionID)
		l.serve(conn)
		conn.Close()
	}
}

// serve pumps the outbound queue and inbound notices until the connection
// drops.
func (l *WSLink) serve(conn *websocket.Conn) {
	readDone := make(chan struct{})

	go func() {
		defer close(readDone)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg noticeMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				slog.Debug("bad notice from hub", "error", err)
				continue
			}
			l.mu.Lock()
			l.notices = append(l.notices, engine.RemoteNotice{
				Kind:      msg.Kind,
				AgentName: msg.AgentName,
				TownID:    msg.TownID,
				Amount:    msg.Amount,
			})
			l.mu.Unlock()
		}
	}()

	for {
		select {
		case msg := <-l.out:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				slog.Debug("remote write failed", "error", err)
				return
			}
		case <-readDone:
			return
		case <-l.done:
			return
		}
	}
}
