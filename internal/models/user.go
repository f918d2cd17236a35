package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a local account keyed by the Google account's stable user id.
// Profile fields come from Google on first login; name/address/phone are
// filled in later through save-profile, which is the only flow (besides the
// admin override) that sets ProfileCompleted.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	GoogleID      string `bson:"google_id,omitempty" json:"googleId"`
	Name          string `bson:"name" json:"name"`
	FullName      string `bson:"full_name" json:"fullName"`
	Picture       string `bson:"picture,omitempty" json:"picture,omitempty"`
	StatusMessage string `bson:"status_message,omitempty" json:"statusMessage,omitempty"`
	Email         string `bson:"email" json:"email"`

	Role             string `bson:"role" json:"role"`
	ProfileCompleted bool   `bson:"profile_completed" json:"profileCompleted"`
	Address          string `bson:"address,omitempty" json:"address,omitempty"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
}
