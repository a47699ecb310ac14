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
)

func projectID(r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	objectID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objectID, true
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}
	if project.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Project name is required", "")
		return
	}

	project.ID = primitive.NewObjectID()
	project.CreatedBy = userID
	project.CreatedAt = time.Now()
	project.IsPinned = false
	project.IsDeleted = false
	project.IsArchived = false
	project.MemberIDs = []string{userID}

	collection := database.DB.Collection("projects")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.InsertOne(ctx, project); err != nil {
		utils.Logger.Warn("Failed to add project")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding project", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, "Project created", map[string]interface{}{"project": project})
}

// ListProjects returns the projects the viewer belongs to. Soft-deleted
// projects are excluded unless ?includeDeleted=true.
func ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	filter := bson.M{"memberIds": userID}
	if r.URL.Query().Get("includeDeleted") != "true" {
		filter["isDeleted"] = false
	}

	collection := database.DB.Collection("projects")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		utils.Logger.Warn("Failed to list projects")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching projects", "")
		return
	}

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		utils.Logger.Warn("Failed to decode projects")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching projects", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Projects fetched", map[string]interface{}{"projects": projects})
}

// GetProject fetches one project and stamps lastViewedAt for the
// viewer's recents ordering.
func GetProject(w http.ResponseWriter, r *http.Request) {
	objectID, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	collection := database.DB.Collection("projects")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var project models.Project
	err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found", "")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching project", "")
		}
		return
	}

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"lastViewedAt": time.Now()}}); err != nil {
		utils.Logger.Warn("Failed to stamp lastViewedAt")
	}

	utils.RespondWithJSON(w, http.StatusOK, "Project fetched", map[string]interface{}{"project": project})
}

// UpdateProject sets the mutable project fields, including the pin,
// archive and soft-delete flags.
func UpdateProject(w http.ResponseWriter, r *http.Request) {
	objectID, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPinned    *bool   `json:"isPinned"`
		IsArchived  *bool   `json:"isArchived"`
		IsDeleted   *bool   `json:"isDeleted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}

	set := bson.M{}
	if req.Name != nil {
		if *req.Name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Project name is required", "")
			return
		}
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.IsPinned != nil {
		set["isPinned"] = *req.IsPinned
	}
	if req.IsArchived != nil {
		set["isArchived"] = *req.IsArchived
	}
	if req.IsDeleted != nil {
		set["isDeleted"] = *req.IsDeleted
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update", "")
		return
	}

	collection := database.DB.Collection("projects")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		utils.Logger.Warn("Failed to update project")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating project", "")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Project updated", nil)
}

// DeleteProject removes the project document. Issues referencing it
// are left in place; there is no cascade.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	objectID, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	collection := database.DB.Collection("projects")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		utils.Logger.Warn("Failed to delete project")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting project", "")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Project deleted", nil)
}

// AddMember appends a user id to the project's member set.
func AddMember(w http.ResponseWriter, r *http.Request) {
	objectID, ok := projectID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user id", "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.ArrayUnionAppend(ctx, "projects", objectID, "memberIds", req.UserID); err != nil {
		utils.Logger.Warn("Failed to add project member")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding member", "")
		return
	}

	actor := utils.GetClaims(r)
	actorID, _ := actor["id"].(string)
	services.LogActivity(models.ActivityRecord{
		ProjectID:     objectID,
		Type:          models.ActivityMemberAdded,
		Message:       "A member joined the project",
		ActorID:       actorID,
		TargetUserIDs: []string{req.UserID},
	})

	utils.RespondWithJSON(w, http.StatusOK, "Member added", nil)
}
