package repository

import (
	"context"
	"dialectgame/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultsRepo archives finished games
type ResultsRepo interface {
	Save(ctx context.Context, results *model.GameResults) error
	GetLatest(ctx context.Context, roomID string) (*model.GameResults, error)
	ListRecent(ctx context.Context, limit int) ([]*model.GameResults, error)
	EnsureIndexes(ctx context.Context) error
}

type resultsRepo struct {
	collection *mongo.Collection
}

// NewResultsRepo creates a new results repository
func NewResultsRepo(db *mongo.Database) ResultsRepo {
	return &resultsRepo{
		collection: db.Collection("game_results"),
	}
}

func (r *resultsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gameId", Value: 1}, {Key: "finishedAt", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "finishedAt", Value: -1}},
		},
	})
	return err
}

// Save upserts by room and finish time so a retried save does not duplicate
func (r *resultsRepo) Save(ctx context.Context, results *model.GameResults) error {
	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"gameId": results.GameID, "finishedAt": results.FinishedAt}
	_, err := r.collection.ReplaceOne(ctx, filter, results, opts)
	return err
}

func (r *resultsRepo) GetLatest(ctx context.Context, roomID string) (*model.GameResults, error) {
	var results model.GameResults
	opts := options.FindOne().SetSort(bson.D{{Key: "finishedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"gameId": roomID}, opts).Decode(&results)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &results, nil
}

func (r *resultsRepo) ListRecent(ctx context.Context, limit int) ([]*model.GameResults, error) {
	opts := options.Find().SetSort(bson.D{{Key: "finishedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.GameResults
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
