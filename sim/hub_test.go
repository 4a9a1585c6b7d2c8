package sim

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubPublishesFrames(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("spectator never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(Frame{T: 1.5, Health: 70, Actors: []Actor{{Kind: "boss", Name: "brute", Z: 18}}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Frame
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.T != 1.5 || got.Health != 70 || len(got.Actors) != 1 || got.Actors[0].Name != "brute" {
		t.Fatalf("unexpected frame %+v", got)
	}

	hub.Close()
	if hub.Len() != 0 {
		t.Fatalf("expected no spectators after Close")
	}
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected a normal close, got %v", err)
	}
}

func TestFrameSchemaNamesFields(t *testing.T) {
	data, err := FrameSchema()
	if err != nil {
		t.Fatalf("FrameSchema: %v", err)
	}
	for _, field := range []string{`"actors"`, `"health"`, `"effects"`} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("expected %s in schema:\n%s", field, data)
		}
	}
}
