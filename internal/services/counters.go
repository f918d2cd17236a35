package services

import (
	"context"

	"github.com/atelierhub/atelier-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterService owns the two single-document counters: the visitor hit
// counter and the order-number sequence. Both bump with $inc so concurrent
// requests never skip or repeat a value.
type CounterService struct {
	db *mongo.Database
}

func NewCounterService(db *mongo.Database) *CounterService {
	return &CounterService{db: db}
}

// bumpCounter runs the $inc upsert for a single-document counter. Two
// concurrent first-ever calls can both miss the document and race the
// upsert; the loser gets a duplicate-key error and retries once, by which
// point the document exists and the retry is a plain increment.
func (s *CounterService) bumpCounter(ctx context.Context, collection, id, field string, dest interface{}) error {
	run := func() error {
		return s.db.Collection(collection).FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$inc": bson.M{field: 1}},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(dest)
	}

	err := run()
	if mongo.IsDuplicateKeyError(err) {
		err = run()
	}
	return err
}

// NextOrderNumber returns the next value of the order sequence, creating
// the counter document on first use.
func (s *CounterService) NextOrderNumber(ctx context.Context) (int64, error) {
	var counter models.OrderCounter
	if err := s.bumpCounter(ctx, "ordercounters", "orders", "seq", &counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// IncrementVisitors bumps the site hit counter and returns the new total.
func (s *CounterService) IncrementVisitors(ctx context.Context) (int64, error) {
	var visitor models.Visitor
	if err := s.bumpCounter(ctx, "visitors", "visitors", "count", &visitor); err != nil {
		return 0, err
	}
	return visitor.Count, nil
}

// VisitorCount reads the current hit count without bumping it.
func (s *CounterService) VisitorCount(ctx context.Context) (int64, error) {
	var visitor models.Visitor
	err := s.db.Collection("visitors").FindOne(ctx, bson.M{"_id": "visitors"}).Decode(&visitor)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return visitor.Count, nil
}
