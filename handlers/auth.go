package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhwiwwx/tracker-api/database"
	"github.com/dhwiwwx/tracker-api/models"
	"github.com/dhwiwwx/tracker-api/utils"
)

// authErrorMessage maps store/provider failures during login and
// registration to the small fixed set of user-facing messages.
func authErrorMessage(err error) string {
	switch {
	case err == mongo.ErrNoDocuments:
		return "Invalid email or password"
	case mongo.IsDuplicateKeyError(err):
		return "An account with this email already exists"
	default:
		return "Authentication service unavailable"
	}
}

func RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required", "")
		return
	}

	hashedPass, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Logger.Warn("Failed to hash password")
		utils.RespondWithError(w, http.StatusInternalServerError, "Error hashing password", "")
		return
	}

	newUser := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  hashedPass,
		ViewMode:  models.ViewModeList,
		CreatedAt: time.Now(),
	}
	collection := database.DB.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.User
	if err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "An account with this email already exists", "")
		return
	}

	if _, err := collection.InsertOne(ctx, newUser); err != nil {
		utils.Logger.Warn("Failed to register user")
		utils.RespondWithError(w, http.StatusInternalServerError, authErrorMessage(err), "")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, "Registration successful", map[string]interface{}{"id": newUser.ID.Hex()})
}

func LoginUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format", "")
		return
	}

	collection := database.DB.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": strings.TrimSpace(strings.ToLower(req.Email))}).Decode(&user)
	if err != nil {
		utils.Logger.Warn("User not found")
		utils.RespondWithError(w, http.StatusUnauthorized, authErrorMessage(err), "")
		return
	}

	if !utils.ComparePassword(req.Password, user.Password) {
		utils.Logger.Warn("Incorrect password")
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.FullName)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to login", "")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Login successful", map[string]interface{}{"token": token, "user": map[string]interface{}{
		"id":       user.ID.Hex(),
		"email":    user.Email,
		"fullname": user.FullName,
	}})
}

func Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing user id", "")
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id", "")
		return
	}

	userCollection := database.DB.Collection("users")
	var user models.User

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found", "")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error finding user", "")
		}
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, "User fetched", map[string]interface{}{"user": user})
}
