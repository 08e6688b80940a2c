package mq

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel booking events go through.
const Channel = "booking-events"

const (
	BookingAdded       = "booking-added"
	BookingDeleted     = "booking-deleted"
	BookingDateUpdated = "booking-date-updated"
)

// Event describes a change to one room's bookings. Guest emails are not
// included; events are broadcast to anyone watching the room.
type Event struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	RoomID string    `json:"roomId"`
	At     time.Time `json:"at"`
}

func NewEvent(eventType, roomID string) Event {
	return Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		RoomID: roomID,
		At:     time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Emit publishes in the background so a slow or missing broker never changes
// the HTTP response.
func Emit(p Publisher, eventType, roomID string) {
	if p == nil {
		return
	}
	ev := NewEvent(eventType, roomID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := p.Publish(ctx, ev); err != nil {
			log.Printf("[Emit] failed to publish %s for room %s: %v", ev.Type, ev.RoomID, err)
		}
	}()
}

// RedisPublisher sends events to Channel.
type RedisPublisher struct {
	Conn *redis.Client
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Conn.Publish(ctx, Channel, data).Err()
}

// LogPublisher only writes the event to the log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev Event) error {
	log.Printf("[Emit] %s room=%s id=%s", ev.Type, ev.RoomID, ev.ID)
	return nil
}

// Fanout delivers to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe forwards every event on Channel to handle until ctx is done.
func Subscribe(ctx context.Context, conn *redis.Client, handle func(Event)) {
	sub := conn.Subscribe(ctx, Channel)
	defer sub.Close()

	log.Println("[Subscriber] Listening for booking events...")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[Subscriber] Failed to parse event: %v", err)
				continue
			}
			handle(ev)
		}
	}
}
