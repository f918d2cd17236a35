package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UpdateUserRequest struct {
	UserID           string  `json:"userId"`
	Role             *string `json:"role,omitempty"`
	ProfileCompleted *bool   `json:"profileCompleted,omitempty"`
}

type UpdateUserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// ListUsers returns all accounts, newest first (admin).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.DB.Collection("users").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// UpdateUser changes a user's role and/or profile-completed flag. The flag
// is written exactly as sent, independent of the underlying profile fields;
// that override is deliberate.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if req.Role == nil && req.ProfileCompleted == nil {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}
	if req.Role != nil && *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	objectID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.ProfileCompleted != nil {
		set["profile_completed"] = *req.ProfileCompleted
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err = h.DB.Collection("users").FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UpdateUserResponse{
		Success: true,
		Message: "User updated",
		User:    &user,
	})
}
