package server

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialControl connects a WebSocket client to the given test server.
func dialControl(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/control"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

// waitForClients blocks until the handler sees the expected client count.
func waitForClients(t *testing.T, h *ControlHandler, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", h.ClientCount(), want)
}

func TestControlHandler_Broadcast(t *testing.T) {
	h := NewControlHandler()
	ts := httptest.NewServer(h)
	defer ts.Close()

	conn := dialControl(t, ts)
	waitForClients(t, h, 1)

	h.Broadcast("status", map[string]string{"text": "tracking hand"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}

	var msg struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}

	if msg.Type != "status" {
		t.Errorf("type = %s, want status", msg.Type)
	}
	if msg.Data["text"] != "tracking hand" {
		t.Errorf("data.text = %s, want tracking hand", msg.Data["text"])
	}
}

func TestControlHandler_MultipleClients(t *testing.T) {
	h := NewControlHandler()
	ts := httptest.NewServer(h)
	defer ts.Close()

	conn1 := dialControl(t, ts)
	conn2 := dialControl(t, ts)
	waitForClients(t, h, 2)

	h.Broadcast("state", map[string]float64{"radius": 57})

	for i, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("client %d: failed to read message: %v", i, err)
		}
		if !strings.Contains(string(data), `"radius":57`) {
			t.Errorf("client %d: message = %s, want radius payload", i, data)
		}
	}
}

func TestControlHandler_ClientDisconnect(t *testing.T) {
	h := NewControlHandler()
	ts := httptest.NewServer(h)
	defer ts.Close()

	conn := dialControl(t, ts)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)

	// Broadcasting with no clients must not panic.
	h.Broadcast("status", map[string]string{"text": "no hand"})
}

func TestControlHandler_ConcurrentBroadcasters(t *testing.T) {
	h := NewControlHandler()
	ts := httptest.NewServer(h)
	defer ts.Close()

	conn := dialControl(t, ts)
	waitForClients(t, h, 1)

	// Drain in the background so the writers never stall on a full socket
	// buffer.
	received := make(chan struct{}, 256)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			received <- struct{}{}
		}
	}()

	// Two goroutines broadcasting to the same connection, as the gesture
	// and render loops do in production.
	const perSender = 50
	var wg sync.WaitGroup
	for sender := 0; sender < 2; sender++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				h.Broadcast(name, map[string]int{"seq": i})
			}
		}(fmt.Sprintf("loop-%d", sender))
	}
	wg.Wait()

	deadline := time.After(2 * time.Second)
	for i := 0; i < 2*perSender; i++ {
		select {
		case <-received:
		case <-deadline:
			t.Fatalf("received %d of %d messages", i, 2*perSender)
		}
	}
}
