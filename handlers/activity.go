package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/models"
	"github.com/dhwiwwx/tracker-api/services"
	"github.com/dhwiwwx/tracker-api/utils"
	"github.com/dhwiwwx/tracker-api/views"
)

// One feed gate per user; the closed-to-open edge is what triggers the
// mark-as-read pass, reopening an already-open feed issues nothing.
var feeds sync.Map

func feedFor(userID string) *views.Feed {
	f, _ := feeds.LoadOrStore(userID, &views.Feed{})
	return f.(*views.Feed)
}

func fetchFeed(ctx context.Context, viewerID string) ([]models.ActivityRecord, error) {
	collection := database.DB.Collection("activity")

	cursor, err := collection.Find(ctx, bson.M{"targetUserIds": viewerID})
	if err != nil {
		return nil, err
	}

	records := []models.ActivityRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return views.SortByRecency(records), nil
}

// ListActivity returns the viewer's feed, newest first.
func ListActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := fetchFeed(ctx, userID)
	if err != nil {
		utils.Logger.Warn("Failed to fetch activity feed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching activity", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Activity fetched", map[string]interface{}{
		"records":     records,
		"unreadCount": views.UnreadCount(records, userID),
	})
}

// UnreadActivityCount returns just the badge number.
func UnreadActivityCount(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := fetchFeed(ctx, userID)
	if err != nil {
		utils.Logger.Warn("Failed to fetch activity feed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching activity", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Unread count", map[string]interface{}{
		"unreadCount": views.UnreadCount(records, userID),
	})
}

// OpenActivityFeed is called when the client opens the feed panel. On
// the closed-to-open edge every unread record gets an idempotent
// add-to-readBy mutation; failures are logged and not retried.
func OpenActivityFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := fetchFeed(ctx, userID)
	if err != nil {
		utils.Logger.Warn("Failed to fetch activity feed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching activity", "")
		return
	}

	issued := feedFor(userID).Open(ctx, records, userID, services.ReadMarker{})

	utils.RespondWithJSON(w, http.StatusOK, "Feed opened", map[string]interface{}{
		"records":    records,
		"markedRead": issued,
	})
}

// CloseActivityFeed arms the next open edge.
func CloseActivityFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	feedFor(userID).Close()

	utils.RespondWithJSON(w, http.StatusOK, "Feed closed", nil)
}
