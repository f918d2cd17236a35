package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmitQuotationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service,omitempty"`
	Message string `json:"message"`
}

type SubmitQuotationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitQuotation records a quotation request from the public site.
func (h *Handler) SubmitQuotation(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and message are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	quotation := models.Quotation{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
	}

	if _, err := h.DB.Collection("quotations").InsertOne(ctx, quotation); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, SubmitQuotationResponse{
		Success: true,
		Message: "Quotation request received",
	})
}

// ListQuotations returns all quotation requests, newest first (admin).
func (h *Handler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.DB.Collection("quotations").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	quotations := []models.Quotation{}
	if err := cursor.All(ctx, &quotations); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quotations)
}
