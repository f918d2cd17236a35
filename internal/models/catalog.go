package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a purchasable item in the catalog. ProductID is the small
// numeric id the frontend uses; stock never goes below zero.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	ProductID   int     `bson:"product_id" json:"productId"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	Stock       int     `bson:"stock" json:"stock"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
	ServiceID   int     `bson:"service_id,omitempty" json:"serviceId,omitempty"`
}

// Service is an offered service in the catalog (not purchasable directly;
// products hang off services).
type Service struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	ServiceID   int    `bson:"service_id" json:"serviceId"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
}
