package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is the shape shared by the blogs and projects collections: a title,
// a description, and a Cloudinary image URL.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
}

// Content is a keyed page block (hero text, about section, etc.).
type Content struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}
