package live

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staysphere/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const roomID = "507f1f77bcf86cd799439011"

func TestHubRegisterPublishUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 4), Room: roomID}
	other := &Client{Send: make(chan []byte, 4), Room: "another-room"}
	hub.Register(client)
	hub.Register(other)

	ev := mq.NewEvent(mq.BookingAdded, roomID)
	if err := hub.Publish(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-client.Send:
		var payload outboundPayload
		if err := json.Unmarshal(got, &payload); err != nil {
			t.Fatal(err)
		}
		if payload.Type != "update" || payload.Event.ID != ev.ID {
			t.Fatalf("unexpected payload %+v", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-other.Send:
		t.Fatalf("client of another room received %s", got)
	default:
	}

	hub.Unregister(client)
	if _, open := <-client.Send; open {
		t.Fatal("Send should be closed after unregister")
	}
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	client := &Client{Send: make(chan []byte, 1), Room: roomID}
	hub.Register(client)
	hub.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if _, open := <-client.Send; open {
		t.Fatal("Send should be closed after Stop")
	}
	if hub.Register(&Client{Send: make(chan []byte, 1), Room: roomID}) {
		t.Fatal("Register should fail on a stopped hub")
	}
}

func TestRoomUpdatesWebsocket(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	router := httprouter.New()
	router.GET("/ws/rooms/:id", RoomUpdates(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms/" + roomID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.Subscribers(roomID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Deliver(mq.NewEvent(mq.BookingDeleted, roomID))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), mq.BookingDeleted) {
		t.Fatalf("unexpected message %s", data)
	}
}

func TestRoomUpdatesRejectsBadID(t *testing.T) {
	hub := NewHub()
	router := httprouter.New()
	router.GET("/ws/rooms/:id", RoomUpdates(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %v", resp)
	}
}
