package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lowStockThreshold marks products that need restocking in the stock report.
const lowStockThreshold = 5

type SummaryRow struct {
	Status  string  `bson:"_id" json:"status"`
	Count   int64   `bson:"count" json:"count"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

type SummaryResponse struct {
	Success bool         `json:"success"`
	From    time.Time    `json:"from"`
	To      time.Time    `json:"to"`
	Rows    []SummaryRow `json:"rows"`
}

type StockReportRow struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	LowStock  bool   `json:"lowStock"`
}

type StockReportResponse struct {
	Success  bool             `json:"success"`
	Products []StockReportRow `json:"products"`
}

// reportRange reads from/to query params (YYYY-MM-DD or RFC3339), defaulting
// to the last 30 days. A date-only "to" covers the whole of that day, not
// just its midnight instant.
func reportRange(r *http.Request) (time.Time, time.Time) {
	parse := func(s string) (t time.Time, dateOnly, ok bool) {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, false, true
		}
		return time.Time{}, false, false
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if t, _, ok := parse(r.URL.Query().Get("from")); ok {
		from = t
	}
	if t, dateOnly, ok := parse(r.URL.Query().Get("to")); ok {
		to = t
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}
	return from, to
}

// ReportSummary aggregates order counts and revenue by status over a date
// range.
func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	from, to := reportRange(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// TODO: this pipeline filters on confirmed/delivered but orders are
	// written as pending/completed/cancelled, so the summary is always
	// empty; confirm which status set is intended before changing either.
	pipeline := []bson.M{
		bson.M{"$match": bson.M{
			"created_at": bson.M{"$gte": from, "$lte": to},
			"status":     bson.M{"$in": bson.A{"confirmed", "delivered"}},
		}},
		bson.M{"$group": bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := h.DB.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	rows := []SummaryRow{}
	if err := cursor.All(ctx, &rows); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{Success: true, From: from, To: to, Rows: rows})
}

// ReportOrders lists all orders in a date range, newest first.
func (h *Handler) ReportOrders(w http.ResponseWriter, r *http.Request) {
	from, to := reportRange(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.DB.Collection("orders").Find(ctx,
		bson.M{"created_at": bson.M{"$gte": from, "$lte": to}},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
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

// ReportStock lists every product's stock level with a low-stock flag.
func (h *Handler) ReportStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.DB.Collection("products").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"product_id": 1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]StockReportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, StockReportRow{
			ProductID: p.ProductID,
			Name:      p.Name,
			Stock:     p.Stock,
			LowStock:  p.Stock < lowStockThreshold,
		})
	}

	writeJSON(w, http.StatusOK, StockReportResponse{Success: true, Products: rows})
}
