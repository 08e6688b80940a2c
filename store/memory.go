package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"staysphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory keeps rooms in insertion order and applies the same update semantics
// as the Mongo backend: whole-document atomicity and "modified" reporting.
type Memory struct {
	mu    sync.RWMutex
	rooms []models.Room
}

func NewMemory() *Memory {
	return &Memory{}
}

// AddRoom stores a copy of room, assigning an _id when it has none.
func (m *Memory) AddRoom(room models.Room) primitive.ObjectID {
	doc := cloneRoom(room)
	oid := doc.ID()
	if oid.IsZero() {
		oid = primitive.NewObjectID()
		doc["_id"] = oid
	}

	m.mu.Lock()
	m.rooms = append(m.rooms, doc)
	m.mu.Unlock()
	return oid
}

// LoadSeed reads a JSON array of rooms. An _id may be a hex string or an
// extended JSON {"$oid": "..."} object.
func (m *Memory) LoadSeed(r io.Reader) (int, error) {
	var docs []map[string]any
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return 0, fmt.Errorf("decode seed: %w", err)
	}

	for i, doc := range docs {
		if raw, ok := doc["_id"]; ok {
			oid, err := seedID(raw)
			if err != nil {
				return i, fmt.Errorf("seed room %d: %w", i, err)
			}
			doc["_id"] = oid
		}
		m.AddRoom(models.Room(doc))
	}
	return len(docs), nil
}

func seedID(raw any) (primitive.ObjectID, error) {
	switch v := raw.(type) {
	case string:
		return ParseID(v)
	case map[string]any:
		if hex, ok := v["$oid"].(string); ok {
			return ParseID(hex)
		}
	}
	return primitive.NilObjectID, ErrInvalidID
}

func (m *Memory) ListRooms(ctx context.Context) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		out = append(out, cloneRoom(room))
	}
	return out, nil
}

func (m *Memory) GetRoom(ctx context.Context, id string) (models.Room, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if room := m.find(oid); room != nil {
		return cloneRoom(room), nil
	}
	return nil, nil
}

func (m *Memory) FindRoomsByBookingEmail(ctx context.Context, email any) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Room{}
	for _, room := range m.rooms {
		for _, b := range room.Bookings() {
			if emailMatches(b, email) {
				out = append(out, cloneRoom(room))
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) PullBookings(ctx context.Context, id string, email any) (bool, error) {
	return m.update(id, func(room models.Room) (bool, error) {
		raw, ok := room["bookingDetails"].([]any)
		if !ok {
			return false, nil
		}

		kept := make([]any, 0, len(raw))
		for _, item := range raw {
			if b, ok := models.AsBooking(item); ok && emailMatches(b, email) {
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) == len(raw) {
			return false, nil
		}
		room["bookingDetails"] = kept
		return true, nil
	})
}

func (m *Memory) SetBookingDate(ctx context.Context, id string, email, date any) (bool, error) {
	return m.update(id, func(room models.Room) (bool, error) {
		raw, ok := room["bookingDetails"].([]any)
		if !ok {
			return false, errors.New("the path 'bookingDetails' must exist in the document in order to apply array updates")
		}

		modified := false
		for _, item := range raw {
			b, ok := models.AsBooking(item)
			if !ok || !emailMatches(b, email) {
				continue
			}
			if current, has := b["bookingDate"]; has && equalValues(current, date) {
				continue
			}
			b["bookingDate"] = date
			modified = true
		}
		return modified, nil
	})
}

func (m *Memory) PushBooking(ctx context.Context, id string, booking models.Booking) (bool, error) {
	return m.update(id, func(room models.Room) (bool, error) {
		entry := booking.Clone()
		switch raw := room["bookingDetails"].(type) {
		case nil:
			room["bookingDetails"] = []any{entry}
		case []any:
			room["bookingDetails"] = append(raw, entry)
		default:
			return false, fmt.Errorf("the field 'bookingDetails' must be an array but is of type %T", raw)
		}
		return true, nil
	})
}

func (m *Memory) LatestReviews(ctx context.Context, limit int) ([]models.Review, error) {
	m.mu.RLock()
	reviews := []models.Review{}
	for _, room := range m.rooms {
		for _, b := range room.Bookings() {
			reviews = append(reviews, models.Review{
				RoomID:   room.ID(),
				RoomName: room.Name(),
				User:     b["name"],
				Rating:   b["rating"],
				Comment:  b["comment"],
				Date:     b["commentDate"],
			})
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(reviews, func(i, j int) bool {
		return compareValues(reviews[i].Date, reviews[j].Date) > 0
	})
	if limit >= 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close(ctx context.Context) error { return nil }

func (m *Memory) find(oid primitive.ObjectID) models.Room {
	for _, room := range m.rooms {
		if room.ID() == oid {
			return room
		}
	}
	return nil
}

// update runs fn on the stored room under the write lock, so each mutation is
// atomic per document like its Mongo counterpart.
func (m *Memory) update(id string, fn func(models.Room) (bool, error)) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.find(oid)
	if room == nil {
		return false, nil
	}
	return fn(room)
}

func emailMatches(b models.Booking, email any) bool {
	current, ok := b["email"]
	if !ok {
		return email == nil
	}
	return equalValues(current, email)
}

// cloneRoom copies the top level and every booking so callers never alias the
// stored maps. bookingDetails is normalized to []any of models.Booking.
func cloneRoom(room models.Room) models.Room {
	out := make(models.Room, len(room))
	for k, v := range room {
		out[k] = v
	}
	if _, ok := room["bookingDetails"]; !ok {
		return out
	}

	var raw []any
	switch v := room["bookingDetails"].(type) {
	case []any:
		raw = v
	case primitive.A:
		raw = v
	case []models.Booking:
		for _, b := range v {
			raw = append(raw, b)
		}
	case []map[string]any:
		for _, b := range v {
			raw = append(raw, b)
		}
	default:
		return out
	}

	details := make([]any, 0, len(raw))
	for _, item := range raw {
		if b, ok := models.AsBooking(item); ok {
			details = append(details, b.Clone())
		} else {
			details = append(details, item)
		}
	}
	out["bookingDetails"] = details
	return out
}
