package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// ResourceRepository is the generic document store behind the catalog
// resources. One instance per collection, configured with the identifier
// field from the resource definition.
type ResourceRepository struct {
	col     *mongo.Collection
	idField string
}

// NewResourceRepository builds a repository for def's collection.
func NewResourceRepository(db *mongo.Database, def domain.ResourceDefinition) *ResourceRepository {
	idField := def.IDField
	if idField == "" {
		idField = "_id"
	}
	return &ResourceRepository{col: db.Collection(def.Collection), idField: idField}
}

// idFilter builds the lookup filter for id. ObjectID-keyed collections
// convert the hex string; natural keys (guides by email) match verbatim.
func (r *ResourceRepository) idFilter(id string) (bson.M, error) {
	if r.idField != "_id" {
		return bson.M{r.idField: id}, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return bson.M{"_id": oid}, nil
}

func (r *ResourceRepository) List(ctx context.Context, filter map[string]any) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.col.Name(), err)
	}
	defer cur.Close(ctx)

	return decodeDocuments(ctx, cur)
}

func (r *ResourceRepository) RandomSample(ctx context.Context, n int) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: n}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", r.col.Name(), err)
	}
	defer cur.Close(ctx)

	return decodeDocuments(ctx, cur)
}

func (r *ResourceRepository) Get(ctx context.Context, id string) (domain.Document, error) {
	filter, err := r.idFilter(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.col.Name(), err)
	}
	return normalizeID(doc), nil
}

func (r *ResourceRepository) Create(ctx context.Context, doc domain.Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	insert := bson.M{"created_at": time.Now().UTC()}
	for k, v := range doc {
		insert[k] = v
	}

	res, err := r.col.InsertOne(ctx, insert)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", r.col.Name(), err)
	}

	if r.idField != "_id" {
		id, _ := doc[r.idField].(string)
		return id, nil
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ResourceRepository) Update(ctx context.Context, id string, fields domain.Document) error {
	filter, err := r.idFilter(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s: %w", r.col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) (int64, error) {
	filter, err := r.idFilter(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.col.Name(), err)
	}
	return res.DeletedCount, nil
}

func (r *ResourceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// decodeDocuments drains a cursor into Documents with hex string ids.
func decodeDocuments(ctx context.Context, cur *mongo.Cursor) ([]domain.Document, error) {
	var docs []domain.Document
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, normalizeID(doc))
	}
	return docs, cur.Err()
}

// normalizeID replaces the ObjectID under "_id" with its hex form so the
// transport layer serializes plain strings.
func normalizeID(doc bson.M) domain.Document {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["_id"] = oid.Hex()
	}
	return domain.Document(doc)
}
