package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/models"
	"github.com/dhwiwwx/tracker-api/utils"
	"github.com/dhwiwwx/tracker-api/views"
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// GetDashboard computes the project's aggregate metrics: status
// counts, priority distribution, completion rate and the 7-day
// burn-down projection.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	pid, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{"projectId": pid})
	if err != nil {
		utils.Logger.Warn("Failed to fetch issues for dashboard")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching issues", "")
		return
	}

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		utils.Logger.Warn("Failed to decode issues for dashboard")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching issues", "")
		return
	}

	summary := views.Summarize(issues, time.Now())

	utils.RespondWithJSON(w, http.StatusOK, "Dashboard computed", map[string]interface{}{"summary": summary})
}
