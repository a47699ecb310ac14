package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View modes for the issue list screen.
const (
	ViewModeList  = "list"
	ViewModeBoard = "board"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"fullname" json:"fullname"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"password,omitempty"`
	ViewMode  string             `bson:"viewMode,omitempty" json:"viewMode,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
