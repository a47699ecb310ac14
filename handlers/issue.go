package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/models"
	"github.com/dhwiwwx/tracker-api/services"
	"github.com/dhwiwwx/tracker-api/utils"
	"github.com/dhwiwwx/tracker-api/views"
)

func issueID(r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	objectID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objectID, true
}

// activityTargets returns the project's member ids minus the actor.
func activityTargets(ctx context.Context, projectID primitive.ObjectID, actorID string) []string {
	var project models.Project
	err := database.DB.Collection("projects").FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		return nil
	}
	targets := make([]string, 0, len(project.MemberIDs))
	for _, id := range project.MemberIDs {
		if id != actorID {
			targets = append(targets, id)
		}
	}
	return targets
}

func logIssueActivity(ctx context.Context, issue models.Issue, r *http.Request, typ models.ActivityType, message string) {
	claims := utils.GetClaims(r)
	actorID, _ := claims["id"].(string)
	actorEmail, _ := claims["email"].(string)
	actorName, _ := claims["name"].(string)

	services.LogActivity(models.ActivityRecord{
		ProjectID:     issue.ProjectID,
		IssueID:       issue.ID,
		Type:          typ,
		Message:       message,
		ActorID:       actorID,
		ActorEmail:    actorEmail,
		ActorName:     actorName,
		TargetUserIDs: activityTargets(ctx, issue.ProjectID, actorID),
	})
}

func CreateIssue(w http.ResponseWriter, r *http.Request) {
	pid, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	var issue models.Issue
	if err := json.NewDecoder(r.Body).Decode(&issue); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}
	if issue.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required", "")
		return
	}

	userID, _ := utils.GetUserID(r)

	issue.ID = primitive.NewObjectID()
	issue.ProjectID = pid
	issue.Reporter = userID
	issue.CreatedAt = time.Now()
	issue.ApplyDefaults()

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.InsertOne(ctx, issue); err != nil {
		utils.Logger.Warn("Failed to add issue")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding issue", "")
		return
	}

	logIssueActivity(ctx, issue, r, models.ActivityIssueCreated, "Issue \""+issue.Title+"\" was created")

	utils.RespondWithJSON(w, http.StatusCreated, "Issue created", map[string]interface{}{"issue": issue})
}

// ListIssues fetches the project's issues and runs the derived-view
// pipeline over them: filter, stable sort, visible window. The tag
// selector is built from the unfiltered collection.
func ListIssues(w http.ResponseWriter, r *http.Request) {
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
		utils.Logger.Warn("Failed to list issues")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching issues", "")
		return
	}

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		utils.Logger.Warn("Failed to decode issues")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching issues", "")
		return
	}

	q := r.URL.Query()
	cfg := views.Config{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
		Sort:   q.Get("sort"),
	}

	filtered := views.Filter(issues, cfg)

	// The client asks for the window it has scrolled to; the window
	// grows in PageSize steps and never passes the filtered length.
	limit := views.PageSize
	if v := q.Get("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			limit = n
		}
	}
	window := views.NewWindow()
	window.Apply(cfg)
	for window.Count(len(filtered)) < limit && window.Count(len(filtered)) < len(filtered) {
		window.Advance(len(filtered))
	}

	visible := window.Visible(filtered)

	utils.RespondWithJSON(w, http.StatusOK, "Issues fetched", map[string]interface{}{
		"items":        visible,
		"total":        len(filtered),
		"visibleCount": len(visible),
		"tags":         views.Tags(issues),
		"empty":        len(filtered) == 0,
	})
}

func GetIssue(w http.ResponseWriter, r *http.Request) {
	objectID, ok := issueID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid issue id", "")
		return
	}

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Issue not found", "")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching issue", "")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Issue fetched", map[string]interface{}{"issue": issue})
}

func UpdateIssue(w http.ResponseWriter, r *http.Request) {
	objectID, ok := issueID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid issue id", "")
		return
	}

	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Priority    *string   `json:"priority"`
		Category    *string   `json:"category"`
		Assignee    *string   `json:"assignee"`
		Deadline    *string   `json:"deadline"`
		Tags        *[]string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}

	set := bson.M{}
	if req.Title != nil {
		if *req.Title == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Title is required", "")
			return
		}
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Priority != nil {
		set["priority"] = *req.Priority
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Assignee != nil {
		set["assignee"] = *req.Assignee
	}
	if req.Deadline != nil {
		set["deadline"] = *req.Deadline
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update", "")
		return
	}

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Issue not found", "")
		} else {
			utils.Logger.Warn("Failed to update issue")
			utils.RespondWithError(w, http.StatusInternalServerError, "Error updating issue", "")
		}
		return
	}

	logIssueActivity(ctx, issue, r, models.ActivityIssueUpdated, "Issue \""+issue.Title+"\" was updated")

	utils.RespondWithJSON(w, http.StatusOK, "Issue updated", nil)
}

func UpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	objectID, ok := issueID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid issue id", "")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}
	if models.NormalizeStatus(req.Status) != req.Status {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status", "")
		return
	}

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"status": req.Status}}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Issue not found", "")
		} else {
			utils.Logger.Warn("Failed to update issue status")
			utils.RespondWithError(w, http.StatusInternalServerError, "Error updating status", "")
		}
		return
	}

	logIssueActivity(ctx, issue, r, models.ActivityStatusChanged, "Issue \""+issue.Title+"\" moved to "+req.Status)

	utils.RespondWithJSON(w, http.StatusOK, "Status updated", nil)
}

// AddComment appends a comment to the issue's ordered comment list.
func AddComment(w http.ResponseWriter, r *http.Request) {
	objectID, ok := issueID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid issue id", "")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment text is required", "")
		return
	}

	comment := models.Comment{Text: req.Text, CreatedAt: time.Now()}

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err := collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$push": bson.M{"comments": comment}},
	).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Issue not found", "")
		} else {
			utils.Logger.Warn("Failed to add comment")
			utils.RespondWithError(w, http.StatusInternalServerError, "Error adding comment", "")
		}
		return
	}

	logIssueActivity(ctx, issue, r, models.ActivityCommentAdded, "New comment on \""+issue.Title+"\"")

	utils.RespondWithJSON(w, http.StatusCreated, "Comment added", map[string]interface{}{"comment": comment})
}

func DeleteIssue(w http.ResponseWriter, r *http.Request) {
	objectID, ok := issueID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid issue id", "")
		return
	}

	collection := database.DB.Collection("issues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err := collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Issue not found", "")
		} else {
			utils.Logger.Warn("Failed to delete issue")
			utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting issue", "")
		}
		return
	}

	logIssueActivity(ctx, issue, r, models.ActivityIssueDeleted, "Issue \""+issue.Title+"\" was deleted")

	utils.RespondWithJSON(w, http.StatusOK, "Issue deleted", nil)
}
