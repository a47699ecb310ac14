package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/models"
)

// CreateRecord inserts an activity record with a fresh id and
// server-side timestamp.
func CreateRecord(ctx context.Context, rec models.ActivityRecord) error {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now()
	if rec.ReadBy == nil {
		rec.ReadBy = []string{}
	}

	collection := database.DB.Collection("activity")

	_, err := collection.InsertOne(ctx, rec)

	return err
}

// LogActivity records an issue lifecycle event without blocking the
// caller. Failures are logged and not retried.
func LogActivity(rec models.ActivityRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	go func() {
		defer cancel()
		if err := CreateRecord(ctx, rec); err != nil {
			zap.L().Warn("Failed to log activity",
				zap.String("type", string(rec.Type)),
				zap.Error(err))
		}
	}()
}

// ReadMarker adds a viewer to an activity record's readBy set via an
// atomic set append, so marking twice is a no-op.
type ReadMarker struct{}

func (ReadMarker) MarkRead(ctx context.Context, recordID primitive.ObjectID, viewerID string) error {
	return database.ArrayUnionAppend(ctx, "activity", recordID, "readBy", viewerID)
}
