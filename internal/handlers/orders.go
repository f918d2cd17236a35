package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/atelierhub/atelier-backend/internal/middleware"
	"github.com/atelierhub/atelier-backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderExpiry is how long a pending order may sit before the scheduled
// sweep cancels it.
const OrderExpiry = 24 * time.Hour

type CreateOrderRequest struct {
	Items         []models.OrderItem   `json:"items"`
	Total         float64              `json:"total"`
	Customer      models.OrderCustomer `json:"customer"`
	PaymentMethod string               `json:"paymentMethod"`
}

type CreateOrderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *models.Order `json:"order,omitempty"`
}

type ListOrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []models.Order `json:"orders"`
}

type CancelExpiredResponse struct {
	Success   bool  `json:"success"`
	Cancelled int64 `json:"cancelled"`
}

// CreateOrder places a pending order for the authenticated caller, sends a
// confirmation email (not fatal when it fails), and clears the caller's cart.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Order items are required")
		return
	}
	if req.Total <= 0 {
		writeError(w, http.StatusBadRequest, "Order total must be positive")
		return
	}
	if req.Customer.Name == "" || req.Customer.Email == "" {
		writeError(w, http.StatusBadRequest, "Customer name and email are required")
		return
	}
	if req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "Payment method is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderNumber, err := h.Counters.NextOrderNumber(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now()
	order := models.Order{
		CreatedAt:     now,
		UpdatedAt:     now,
		OrderNumber:   orderNumber,
		Reference:     uuid.NewString(),
		UserID:        userObjectID,
		Items:         req.Items,
		Total:         req.Total,
		Customer:      req.Customer,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
	}

	res, err := h.DB.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	order.ID = res.InsertedID.(primitive.ObjectID)

	// Confirmation email: a failure is logged and the order stands
	if h.Email != nil {
		subject := fmt.Sprintf("Order #%d confirmed", order.OrderNumber)
		body := fmt.Sprintf("<p>Thanks %s, we received your order #%d for a total of %.2f.</p>",
			order.Customer.Name, order.OrderNumber, order.Total)
		if err := h.Email.Send(r.Context(), order.Customer.Email, subject, body); err != nil {
			log.Printf("Failed to send order confirmation for #%d: %v", order.OrderNumber, err)
		}
	}

	// The cart served its purpose
	if _, err := h.DB.Collection("carts").DeleteOne(ctx, bson.M{"user_id": userObjectID}); err != nil {
		log.Printf("Failed to clear cart for user %s: %v", userID, err)
	}

	writeJSON(w, http.StatusCreated, CreateOrderResponse{
		Success: true,
		Message: "Order placed",
		Order:   &order,
	})
}

// ListOrders returns the caller's orders, newest first. Admins see all orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	role, _ := middleware.RoleFromContext(r.Context())
	if role != models.RoleAdmin {
		userObjectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		filter["user_id"] = userObjectID
	}

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := h.DB.Collection("orders").Find(ctx, filter, findOptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ListOrdersResponse{Success: true, Orders: orders})
}

// CancelExpiredOrders cancels pending orders older than OrderExpiry. Called
// by the internal scheduler with the shared cron secret.
func (h *Handler) CancelExpiredOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-OrderExpiry)
	res, err := h.DB.Collection("orders").UpdateMany(ctx,
		bson.M{
			"status":     models.OrderStatusPending,
			"created_at": bson.M{"$lt": cutoff},
		},
		bson.M{"$set": bson.M{
			"status":     models.OrderStatusCancelled,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if res.ModifiedCount > 0 {
		log.Printf("Cancelled %d expired orders", res.ModifiedCount)
	}

	writeJSON(w, http.StatusOK, CancelExpiredResponse{Success: true, Cancelled: res.ModifiedCount})
}
