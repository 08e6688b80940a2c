// Package store holds the room document store and its two backends: MongoDB
// for production and an in-memory copy of the same semantics for tests and
// local runs.
package store

import (
	"context"
	"errors"

	"staysphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a room id is not a 24 character hex ObjectID.
var ErrInvalidID = errors.New("invalid room id")

// RoomStore is everything the HTTP layer needs from persistence. Every
// mutation reports whether the store actually modified a room document.
type RoomStore interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	// GetRoom returns nil, nil when no room has the id.
	GetRoom(ctx context.Context, id string) (models.Room, error)
	FindRoomsByBookingEmail(ctx context.Context, email any) ([]models.Room, error)

	PullBookings(ctx context.Context, id string, email any) (bool, error)
	SetBookingDate(ctx context.Context, id string, email, date any) (bool, error)
	PushBooking(ctx context.Context, id string, booking models.Booking) (bool, error)

	LatestReviews(ctx context.Context, limit int) ([]models.Review, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ParseID converts a hex room id into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, ErrInvalidID
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
