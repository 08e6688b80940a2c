package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB is the single shared client and the collections of the room database.
type DB struct {
	Client                *mongo.Client
	RoomsCollection       *mongo.Collection
	BookedRoomsCollection *mongo.Collection // seeded alongside rooms; no route reads it
}

// Connect opens the client with the Stable API v1 in strict mode. Nested
// documents decode as bson.M so rooms round-trip to JSON unchanged.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	d := client.Database(database)
	return &DB{
		Client:                client,
		RoomsCollection:       d.Collection("rooms"),
		BookedRoomsCollection: d.Collection("bookedRooms"),
	}, nil
}

// EnsureIndexes creates the multikey index behind the email lookups.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.RoomsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bookingDetails.email", Value: 1}},
	})
	return err
}
