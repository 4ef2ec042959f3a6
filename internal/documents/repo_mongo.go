package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type mongoDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Text      string        `bson:"text"`
	CreatedAt time.Time     `bson:"created_at"`
}

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	Collection *mongo.Collection
}

// NewMongoRepo binds a repo to database.collection on client.
func NewMongoRepo(client *mongo.Client, database, collection string) *MongoRepo {
	return &MongoRepo{Collection: client.Database(database).Collection(collection)}
}

// Put inserts the text with a client-generated ObjectID.
func (r *MongoRepo) Put(ctx context.Context, text string) (string, error) {
	doc := mongoDocument{
		ID:        bson.NewObjectID(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: insert document: %w", ErrStorageUnavailable, err)
	}
	return doc.ID.Hex(), nil
}

// Get looks up a document by its hex ObjectID.
func (r *MongoRepo) Get(ctx context.Context, id string) (Document, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Document{}, ErrNotFound
	}

	var doc mongoDocument
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("%w: find document: %w", ErrStorageUnavailable, err)
	}
	return Document{
		ID:        doc.ID.Hex(),
		Text:      doc.Text,
		CreatedAt: doc.CreatedAt,
	}, nil
}

var _ Repo = (*MongoRepo)(nil)
