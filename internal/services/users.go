package services

import (
	"context"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"github.com/atelierhub/atelier-backend/internal/oauth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService owns find-or-create semantics for accounts keyed by the
// Google user id.
type UserService struct {
	db *mongo.Database
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{db: db}
}

// FindOrCreate looks up the account for a resolved Google profile, creating
// it with defaults on first login. Repeat logins return the stored record
// unchanged; only save-profile overwrites profile fields.
//
// Two concurrent first logins can both miss the lookup and race the insert.
// The unique index on google_id rejects the loser, which then re-reads the
// record the winner just created instead of failing the login.
func (s *UserService) FindOrCreate(ctx context.Context, profile *oauth.Profile) (*models.User, error) {
	users := s.db.Collection("users")

	var user models.User
	err := users.FindOne(ctx, bson.M{"google_id": profile.ID}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = "Anonymous"
	}

	now := time.Now()
	user = models.User{
		CreatedAt:        now,
		UpdatedAt:        now,
		GoogleID:         profile.ID,
		Name:             name,
		FullName:         name,
		Picture:          profile.Picture,
		StatusMessage:    profile.StatusMessage,
		Email:            profile.Email,
		Role:             models.RoleUser,
		ProfileCompleted: false,
	}

	res, err := users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Someone else just created it; use their record.
			var existing models.User
			if err := users.FindOne(ctx, bson.M{"google_id": profile.ID}).Decode(&existing); err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return &user, nil
}
