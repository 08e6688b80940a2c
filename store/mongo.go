package store

import (
	"context"
	"log"
	"time"

	"staysphere/db"
	"staysphere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo is the RoomStore backed by the shared client in db.DB.
type Mongo struct {
	db    *db.DB
	Rooms *mongo.Collection
}

func NewMongo(d *db.DB) *Mongo {
	return &Mongo{db: d, Rooms: d.RoomsCollection}
}

func (m *Mongo) ListRooms(ctx context.Context) ([]models.Room, error) {
	return findRooms(ctx, m.Rooms, bson.M{})
}

func (m *Mongo) GetRoom(ctx context.Context, id string) (models.Room, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var room models.Room
	err = m.Rooms.FindOne(ctx, bson.M{"_id": oid}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (m *Mongo) FindRoomsByBookingEmail(ctx context.Context, email any) ([]models.Room, error) {
	filter := bson.M{
		"bookingDetails": bson.M{
			"$elemMatch": bson.M{"email": email},
		},
	}
	return findRooms(ctx, m.Rooms, filter)
}

func (m *Mongo) PullBookings(ctx context.Context, id string, email any) (bool, error) {
	return m.updateRoom(ctx, id, bson.M{
		"$pull": bson.M{"bookingDetails": bson.M{"email": email}},
	})
}

func (m *Mongo) SetBookingDate(ctx context.Context, id string, email, date any) (bool, error) {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []any{bson.M{"elem.email": email}},
	})
	return m.updateRoom(ctx, id, bson.M{
		"$set": bson.M{"bookingDetails.$[elem].bookingDate": date},
	}, opts)
}

func (m *Mongo) PushBooking(ctx context.Context, id string, booking models.Booking) (bool, error) {
	return m.updateRoom(ctx, id, bson.M{
		"$push": bson.M{"bookingDetails": bson.M(booking)},
	})
}

func (m *Mongo) LatestReviews(ctx context.Context, limit int) ([]models.Review, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$bookingDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "roomId", Value: "$_id"},
			{Key: "roomName", Value: "$name"},
			{Key: "user", Value: "$bookingDetails.name"},
			{Key: "rating", Value: "$bookingDetails.rating"},
			{Key: "comment", Value: "$bookingDetails.comment"},
			{Key: "date", Value: "$bookingDetails.commentDate"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := m.Rooms.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	log.Println("[store] disconnecting MongoDB client")
	return m.db.Client.Disconnect(ctx)
}

func (m *Mongo) updateRoom(ctx context.Context, id string, update bson.M, opts ...*options.UpdateOptions) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}
	res, err := m.Rooms.UpdateOne(ctx, bson.M{"_id": oid}, update, opts...)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func findRooms(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]models.Room, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
