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
)

type SaveProfileRequest struct {
	UserID  string `json:"userId,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
}

type SaveProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

type CheckProfileRequest struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

type CheckProfileResponse struct {
	ProfileCompleted bool `json:"profileCompleted"`
}

// SaveProfile creates or updates a profile. The completion flag is set here
// (and only here, besides the admin override): it becomes true once name,
// address, and phone have all been supplied, and a repeat call with the same
// input leaves the record in the same state.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" && req.Email == "" {
		writeError(w, http.StatusBadRequest, "userId or email is required")
		return
	}

	var objectID primitive.ObjectID
	if req.UserID != "" {
		var idErr error
		objectID, idErr = primitive.ObjectIDFromHex(req.UserID)
		if idErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	users := h.DB.Collection("users")

	// Find the account by id, falling back to email
	var user models.User
	var err error
	if req.UserID != "" {
		err = users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	} else {
		err = users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	}

	if err == mongo.ErrNoDocuments {
		// First profile save before any login: create the account here
		now := time.Now()
		name := req.Name
		if name == "" {
			name = "Anonymous"
		}
		user = models.User{
			CreatedAt:        now,
			UpdatedAt:        now,
			Name:             name,
			FullName:         name,
			Email:            req.Email,
			Address:          req.Address,
			Phone:            req.Phone,
			Role:             models.RoleUser,
			ProfileCompleted: req.Name != "" && req.Address != "" && req.Phone != "",
		}
		res, insertErr := users.InsertOne(ctx, user)
		if insertErr != nil {
			writeError(w, http.StatusInternalServerError, insertErr.Error())
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)
		writeJSON(w, http.StatusCreated, SaveProfileResponse{
			Success: true,
			Message: "Profile created",
			User:    &user,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Merge supplied fields over the stored record
	if req.Name != "" {
		user.Name = req.Name
		user.FullName = req.Name
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if user.Name != "" && user.Address != "" && user.Phone != "" {
		user.ProfileCompleted = true
	}
	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":              user.Name,
		"full_name":         user.FullName,
		"address":           user.Address,
		"phone":             user.Phone,
		"email":             user.Email,
		"profile_completed": user.ProfileCompleted,
		"updated_at":        user.UpdatedAt,
	}}
	if _, err := users.UpdateByID(ctx, user.ID, update); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SaveProfileResponse{
		Success: true,
		Message: "Profile saved",
		User:    &user,
	})
}

// CheckProfile reports the completion flag for a user looked up by id or email.
func (h *Handler) CheckProfile(w http.ResponseWriter, r *http.Request) {
	var req CheckProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" && req.Email == "" {
		writeError(w, http.StatusBadRequest, "userId or email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if req.UserID != "" {
		objectID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		filter["_id"] = objectID
	} else {
		filter["email"] = req.Email
	}

	var user models.User
	if err := h.DB.Collection("users").FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, CheckProfileResponse{ProfileCompleted: user.ProfileCompleted})
}
