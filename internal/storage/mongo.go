package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo establishes and verifies a MongoDB connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return client, nil
}

// MongoRepository maps the repository contract onto single-document
// operations against one collection. The logical `id` field is distinct from
// Mongo's own `_id`; for records predating the logical id, the ObjectID hex
// is projected into it.
type MongoRepository[T Entity] struct {
	coll   *mongo.Collection
	decode DecodeFunc[T]
}

// NewMongoRepository creates a repository over the given collection.
func NewMongoRepository[T Entity](coll *mongo.Collection, decode DecodeFunc[T]) *MongoRepository[T] {
	return &MongoRepository[T]{coll: coll, decode: decode}
}

func (r *MongoRepository[T]) decodeRaw(raw bson.M) T {
	doc := map[string]any(raw)
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["_id"] = oid.Hex()
	}
	if _, ok := doc["id"]; !ok {
		doc["id"] = doc["_id"]
	}
	return r.decode(doc)
}

// FindAll returns entities in stored order, filtered by exact match.
func (r *MongoRepository[T]) FindAll(ctx context.Context, filters map[string]any) ([]T, error) {
	query := bson.M{}
	for key, value := range filters {
		query[key] = value
	}
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("finding in %s: %w", r.coll.Name(), err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("reading %s cursor: %w", r.coll.Name(), err)
	}
	var entities []T
	for _, raw := range raws {
		entities = append(entities, r.decodeRaw(raw))
	}
	return entities, nil
}

// FindByID returns the entity with the given logical id, or the zero value.
func (r *MongoRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	var raw bson.M
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("finding %s by id: %w", r.coll.Name(), err)
	}
	return r.decodeRaw(raw), nil
}

// Create persists a new entity, generating a logical id when it has none.
func (r *MongoRepository[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	if entity.GetID() == "" {
		entity.SetID(nextID())
	}
	if _, err := r.coll.InsertOne(ctx, entity.Document()); err != nil {
		return zero, fmt.Errorf("inserting into %s: %w", r.coll.Name(), err)
	}
	return entity, nil
}

// Update replaces the stored fields of the document matching id. Returns the
// zero value when no document matches.
func (r *MongoRepository[T]) Update(ctx context.Context, id string, entity T) (T, error) {
	var zero T
	touch(entity)
	entity.SetID(id)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var raw bson.M
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": entity.Document()},
		opts,
	).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("updating %s: %w", r.coll.Name(), err)
	}
	return r.decodeRaw(raw), nil
}

// Delete removes the document matching id, reporting whether one existed.
func (r *MongoRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("deleting from %s: %w", r.coll.Name(), err)
	}
	return res.DeletedCount > 0, nil
}

// Exists reports whether any document matches the filters.
func (r *MongoRepository[T]) Exists(ctx context.Context, filters map[string]any) (bool, error) {
	query := bson.M{}
	for key, value := range filters {
		query[key] = value
	}
	count, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return false, fmt.Errorf("counting %s: %w", r.coll.Name(), err)
	}
	return count > 0, nil
}
