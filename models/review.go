package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review is one flattened booking as served by /latest-reviews. Fields the
// booking never had stay absent in the JSON output.
type Review struct {
	RoomID   primitive.ObjectID `json:"roomId" bson:"roomId"`
	RoomName any                `json:"roomName,omitempty" bson:"roomName,omitempty"`
	User     any                `json:"user,omitempty" bson:"user,omitempty"`
	Rating   any                `json:"rating,omitempty" bson:"rating,omitempty"`
	Comment  any                `json:"comment,omitempty" bson:"comment,omitempty"`
	Date     any                `json:"date,omitempty" bson:"date,omitempty"`
}
