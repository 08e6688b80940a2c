package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"staysphere/live"
	"staysphere/store"
)

type closeRecorder struct {
	store.RoomStore
	closed bool
}

func (c *closeRecorder) Close(context.Context) error {
	c.closed = true
	return nil
}

func TestShutdownReleasesBeforeReturning(t *testing.T) {
	hub := live.NewHub()
	go hub.Run()

	client := &live.Client{Send: make(chan []byte, 1), Room: "507f1f77bcf86cd799439011"}
	if !hub.Register(client) {
		t.Fatal("register failed on a running hub")
	}

	st := &closeRecorder{RoomStore: store.NewMemory()}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := shutdown(ctx, &http.Server{}, hub, nil, st); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !st.closed {
		t.Fatal("store was not closed by the time shutdown returned")
	}

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("unexpected message after shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
}

func TestShutdownClosesStoreAfterDeadline(t *testing.T) {
	hub := live.NewHub()
	go hub.Run()

	st := &closeRecorder{RoomStore: store.NewMemory()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	shutdown(ctx, &http.Server{}, hub, nil, st)
	if !st.closed {
		t.Fatal("store must be closed even when the drain deadline has passed")
	}
}
