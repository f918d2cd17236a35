package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/atelierhub/atelier-backend/internal/middleware"
	"github.com/atelierhub/atelier-backend/internal/models"
	"github.com/atelierhub/atelier-backend/internal/oauth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExchangeCodeRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type ExchangeCodeResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	IDToken      string       `json:"idToken,omitempty"`
	AuthToken    string       `json:"authToken"`
	User         *models.User `json:"user"`
}

// ExchangeCode turns a Google authorization code into provider tokens, finds
// or creates the local account, and issues a signed session token. The steps
// run strictly in sequence and any failure short-circuits; a token obtained
// before a later failure is simply discarded, not revoked.
func (h *Handler) ExchangeCode(w http.ResponseWriter, r *http.Request) {
	var req ExchangeCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Code == "" || req.State == "" {
		writeError(w, http.StatusBadRequest, "Code and state are required")
		return
	}

	tokens, err := h.OAuth.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		var exchangeErr *oauth.TokenExchangeError
		if errors.As(err, &exchangeErr) && exchangeErr.Transport {
			writeError(w, http.StatusInternalServerError, exchangeErr.Message)
			return
		}
		message := err.Error()
		if exchangeErr != nil {
			message = exchangeErr.Message
		}
		writeError(w, http.StatusBadRequest, message)
		return
	}

	profile, err := h.OAuth.FetchProfile(r.Context(), tokens.AccessToken)
	if err != nil {
		log.Printf("Failed to fetch Google profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.FindOrCreate(ctx, profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	authToken, err := h.Tokens.Sign(user.ID.Hex(), user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ExchangeCodeResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		IDToken:      tokens.IDToken,
		AuthToken:    authToken,
		User:         user,
	})
}

// GetMe returns the authenticated caller's account record.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
