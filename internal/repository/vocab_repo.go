package repository

import (
	"context"
	"dialectgame/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VocabRepo stores the word pairs questions are generated from
type VocabRepo interface {
	// Lookup
	ListByPair(ctx context.Context, language, target string) ([]model.VocabEntry, error)
	Count(ctx context.Context) (int64, error)

	// Seeding
	Upsert(ctx context.Context, entries []model.VocabEntry) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type vocabRepo struct {
	collection *mongo.Collection
}

func NewVocabRepo(db *mongo.Database) VocabRepo {
	return &vocabRepo{
		collection: db.Collection("vocabulary"),
	}
}

func (r *vocabRepo) EnsureIndexes(ctx context.Context) error {
	// One entry per word and language pair
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "language", Value: 1}, {Key: "targetLanguage", Value: 1}, {Key: "word", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *vocabRepo) ListByPair(ctx context.Context, language, target string) ([]model.VocabEntry, error) {
	// Find all entries for the language pair
	cursor, err := r.collection.Find(ctx, bson.M{"language": language, "targetLanguage": target})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	// Decode all results into slice
	var entries []model.VocabEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *vocabRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// Upsert writes entries keyed by word and language pair, returning how many were new
func (r *vocabRepo) Upsert(ctx context.Context, entries []model.VocabEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	// Build one replace per entry
	writes := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		filter := bson.M{"language": e.Language, "targetLanguage": e.TargetLanguage, "word": e.Word}
		writes = append(writes, mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(e).SetUpsert(true))
	}

	// Unordered: a failing entry does not abort the batch
	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return res.UpsertedCount, nil
}
