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

type SaveCartRequest struct {
	UserID string            `json:"userId"`
	Items  []models.CartItem `json:"cartItems"`
}

type CartResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	UserID  string            `json:"userId"`
	Items   []models.CartItem `json:"cartItems"`
}

// GetCart returns the cart for a user; an unknown user has an empty cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err = h.DB.Collection("carts").FindOne(ctx, bson.M{"user_id": objectID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		writeJSON(w, http.StatusOK, CartResponse{Success: true, UserID: userID, Items: []models.CartItem{}})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, CartResponse{Success: true, UserID: userID, Items: items})
}

// SaveCart replaces the user's cart wholesale. Concurrent saves are
// last-write-wins; there is no merging.
func (h *Handler) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req SaveCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	objectID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if req.Items == nil {
		req.Items = []models.CartItem{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = h.DB.Collection("carts").UpdateOne(ctx,
		bson.M{"user_id": objectID},
		bson.M{"$set": bson.M{
			"items":      req.Items,
			"updated_at": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Message: "Cart saved",
		UserID:  req.UserID,
		Items:   req.Items,
	})
}
