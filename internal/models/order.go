package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Orders are created pending and move to completed or
// cancelled; the expiry job cancels pending orders that sit too long.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type OrderItem struct {
	ProductID int     `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

type OrderCustomer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	OrderNumber   int64              `bson:"order_number" json:"orderNumber"`
	Reference     string             `bson:"reference" json:"reference"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Customer      OrderCustomer      `bson:"customer" json:"customer"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
}

// OrderCounter is the sequence document behind order numbers.
// Single document with _id "orders", bumped atomically with $inc.
type OrderCounter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
