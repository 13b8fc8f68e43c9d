package remote

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestAttemptConsumeNeverBlocks(t *testing.T) {
	// No hub listening: everything queues or drops, nothing hangs.
	l := Dial("ws://127.0.0.1:1")
	defer l.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < outboundQueueCap*2; i++ {
			l.AttemptConsume(1, "", "tavern", 8)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AttemptConsume blocked")
	}
	if got := l.Notices(); len(got) != 0 {
		t.Fatalf("notices = %v, want none", got)
	}
}

func TestLinkRoundTrip(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan consumeMsg, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var msg consumeMsg
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("read: %v", err)
			return
		}
		received <- msg

		conn.WriteJSON(noticeMsg{Kind: "revenue", TownID: "Farwick", Amount: 12})
		// Hold the connection open until the client hangs up.
		conn.ReadMessage()
	}))
	defer srv.Close()

	l := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	defer l.Close()

	l.AttemptConsume(7, "Farwick", "tavern", 8)

	select {
	case msg := <-received:
		if msg.Kind != "consume" || msg.AgentID != 7 || msg.VenueID != "tavern" || msg.Amount != 8 {
			t.Fatalf("hub received %+v", msg)
		}
		if msg.SessionID == "" {
			t.Fatal("consume events must carry a session id")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("hub never received the consume event")
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if notices := l.Notices(); len(notices) > 0 {
			n := notices[0]
			if n.Kind != "revenue" || n.TownID != "Farwick" || n.Amount != 12 {
				t.Fatalf("notice = %+v", n)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("notice never arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
