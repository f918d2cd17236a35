package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCacheKey = "products"
	servicesCacheKey = "services"
)

type UpdateStockRequest struct {
	ProductID int    `json:"productId"`
	Change    int    `json:"change"`
	UserID    string `json:"userId"`
}

// applyStockChange applies a delta to a stock level, clamping at zero.
func applyStockChange(current, change int) int {
	next := current + change
	if next < 0 {
		return 0
	}
	return next
}

// ListServices returns the service catalog, cached in Redis.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var services []models.Service
	if hit, _ := h.Cache.Get(ctx, servicesCacheKey, &services); hit {
		writeJSON(w, http.StatusOK, services)
		return
	}

	cursor, err := h.DB.Collection("services").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"service_id": 1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	services = []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Cache.Set(ctx, servicesCacheKey, services)
	writeJSON(w, http.StatusOK, services)
}

// ListProducts returns the product catalog, cached in Redis. An optional
// serviceId query filters by service (filtered reads skip the cache).
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceIDStr := r.URL.Query().Get("serviceId")

	var products []models.Product
	if serviceIDStr == "" {
		if hit, _ := h.Cache.Get(ctx, productsCacheKey, &products); hit {
			writeJSON(w, http.StatusOK, products)
			return
		}
	}

	filter := bson.M{}
	if serviceIDStr != "" {
		serviceID, err := strconv.Atoi(serviceIDStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid serviceId")
			return
		}
		filter["service_id"] = serviceID
	}

	cursor, err := h.DB.Collection("products").Find(ctx, filter,
		options.Find().SetSort(bson.M{"product_id": 1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	products = []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if serviceIDStr == "" {
		h.Cache.Set(ctx, productsCacheKey, products)
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product by its numeric id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = h.DB.Collection("products").FindOne(ctx, bson.M{"product_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// UpdateStock applies a stock delta to a product, clamping the result at
// zero, and returns {"<productId>": <newStock>}.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products := h.DB.Collection("products")

	var product models.Product
	err := products.FindOne(ctx, bson.M{"product_id": req.ProductID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	newStock := applyStockChange(product.Stock, req.Change)

	_, err = products.UpdateOne(ctx,
		bson.M{"product_id": req.ProductID},
		bson.M{"$set": bson.M{
			"stock":      newStock,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Cache.Delete(ctx, productsCacheKey)

	writeJSON(w, http.StatusOK, map[string]int{strconv.Itoa(req.ProductID): newStock})
}
