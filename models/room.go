package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room is a document from the rooms collection. Rooms are seeded out of band,
// so apart from _id, name and bookingDetails every field is kept verbatim.
type Room map[string]any

// Booking is one entry of a room's bookingDetails array. Clients may send any
// shape; only email, bookingDate and the review fields carry meaning here.
type Booking map[string]any

// ID returns the room's _id, or NilObjectID if it is missing or not an ObjectID.
func (r Room) ID() primitive.ObjectID {
	if oid, ok := r["_id"].(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}

func (r Room) Name() any {
	return r["name"]
}

// Bookings returns the embedded bookings in array order. Elements that are not
// documents are skipped.
func (r Room) Bookings() []Booking {
	var raw []any
	switch v := r["bookingDetails"].(type) {
	case primitive.A:
		raw = v
	case []any:
		raw = v
	case []Booking:
		return v
	default:
		return nil
	}

	out := make([]Booking, 0, len(raw))
	for _, item := range raw {
		if b, ok := AsBooking(item); ok {
			out = append(out, b)
		}
	}
	return out
}

// AsBooking converts any decoded sub-document into a Booking.
func AsBooking(v any) (Booking, bool) {
	switch d := v.(type) {
	case Booking:
		return d, true
	case bson.M:
		return Booking(d), true
	case map[string]any:
		return Booking(d), true
	case bson.D:
		return Booking(d.Map()), true
	default:
		return nil, false
	}
}

func (b Booking) Email() any {
	return b["email"]
}

func (b Booking) BookingDate() any {
	return b["bookingDate"]
}

// Clone returns a shallow copy so stores never share maps with callers.
func (b Booking) Clone() Booking {
	out := make(Booking, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
