package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/models"
	"github.com/dhwiwwx/tracker-api/utils"
)

// ViewPrefStore reads and writes a user's issue-list view mode. The
// handlers only talk to this port, so tests can swap in a fake.
type ViewPrefStore interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, mode string) error
}

// Prefs is the store the preference handlers use. Production keeps the
// mode on the user document.
var Prefs ViewPrefStore = mongoPrefStore{}

type mongoPrefStore struct{}

func (mongoPrefStore) Get(ctx context.Context, userID string) (string, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", err
	}

	var user models.User
	err = database.DB.Collection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		return "", err
	}
	if user.ViewMode == "" {
		return models.ViewModeList, nil
	}
	return user.ViewMode, nil
}

func (mongoPrefStore) Set(ctx context.Context, userID, mode string) error {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = database.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"viewMode": mode}},
	)
	return err
}

func GetViewPref(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mode, err := Prefs.Get(ctx, userID)
	if err != nil {
		utils.Logger.Warn("Failed to read view preference")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading preference", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Preference fetched", map[string]interface{}{"viewMode": mode})
}

func SetViewPref(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	var req struct {
		ViewMode string `json:"viewMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}
	if req.ViewMode != models.ViewModeList && req.ViewMode != models.ViewModeBoard {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown view mode", "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Prefs.Set(ctx, userID, req.ViewMode); err != nil {
		utils.Logger.Warn("Failed to save view preference")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving preference", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Preference saved", nil)
}
