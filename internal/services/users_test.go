package services

import (
	"context"
	"testing"

	"github.com/atelierhub/atelier-backend/internal/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindOrCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first login creates with defaults", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "atelier.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		svc := NewUserService(mt.DB)
		user, err := svc.FindOrCreate(context.Background(), &oauth.Profile{ID: "google-1"})
		require.NoError(mt, err)

		assert.Equal(mt, "google-1", user.GoogleID)
		assert.Equal(mt, "Anonymous", user.Name)
		assert.Equal(mt, "Anonymous", user.FullName)
		assert.Equal(mt, "user", user.Role)
		assert.False(mt, user.ProfileCompleted)
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("repeat login returns the stored record unchanged", func(mt *mtest.T) {
		existingID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "atelier.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: existingID},
				{Key: "google_id", Value: "google-1"},
				{Key: "name", Value: "Stored Name"},
				{Key: "email", Value: "stored@example.com"},
				{Key: "role", Value: "admin"},
				{Key: "profile_completed", Value: true},
			}),
		)

		svc := NewUserService(mt.DB)
		user, err := svc.FindOrCreate(context.Background(), &oauth.Profile{
			ID:    "google-1",
			Name:  "Fresh Provider Name",
			Email: "fresh@example.com",
		})
		require.NoError(mt, err)

		assert.Equal(mt, existingID, user.ID)
		assert.Equal(mt, "Stored Name", user.Name, "repeat login must not overwrite profile fields")
		assert.Equal(mt, "stored@example.com", user.Email)
		assert.Equal(mt, "admin", user.Role)
		assert.True(mt, user.ProfileCompleted)
	})

	mt.Run("lost insert race re-reads the winner", func(mt *mtest.T) {
		winnerID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "atelier.users", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: atelier.users index: google_id_1",
			}),
			mtest.CreateCursorResponse(0, "atelier.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: winnerID},
				{Key: "google_id", Value: "google-1"},
				{Key: "name", Value: "Jo"},
				{Key: "role", Value: "user"},
			}),
		)

		svc := NewUserService(mt.DB)
		user, err := svc.FindOrCreate(context.Background(), &oauth.Profile{ID: "google-1", Name: "Jo"})
		require.NoError(mt, err, "a lost insert race must resolve to the winner's record, not an error")

		assert.Equal(mt, winnerID, user.ID)
		assert.Equal(mt, "google-1", user.GoogleID)
	})

	mt.Run("non-duplicate insert errors propagate", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "atelier.users", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    121,
				Message: "Document failed validation",
			}),
		)

		svc := NewUserService(mt.DB)
		_, err := svc.FindOrCreate(context.Background(), &oauth.Profile{ID: "google-1"})
		assert.Error(mt, err)
	})
}
