package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	IsPinned     bool               `bson:"isPinned" json:"isPinned"`
	IsDeleted    bool               `bson:"isDeleted" json:"isDeleted"`
	IsArchived   bool               `bson:"isArchived" json:"isArchived"`
	LastViewedAt time.Time          `bson:"lastViewedAt,omitempty" json:"lastViewedAt"`
	MemberIDs    []string           `bson:"memberIds" json:"memberIds"`
	CreatedBy    string             `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
