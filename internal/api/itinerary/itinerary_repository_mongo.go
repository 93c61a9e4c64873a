package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

var _ Repository = (*MongoRepository)(nil)

// storeKeys are the top-level document fields owned by the store rather
// than the itinerary body.
var storeKeys = []string{"_id", "id", "ownerId", "createdAt", "updatedAt"}

// MongoRepository keeps itinerary bodies as top-level document fields, the
// layout older clients wrote directly. Both ObjectID and string ids are
// accepted on reads.
type MongoRepository struct {
	logger     *slog.Logger
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoRepository(collection *mongo.Collection, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		logger:     logger,
		collection: collection,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *MongoRepository) Create(ctx context.Context, ownerID string, body types.Document) (*types.StoredDocument, error) {
	oid := primitive.NewObjectID()
	now := r.now()

	doc := bodyToBSON(body)
	doc["_id"] = oid
	doc["ownerId"] = ownerID
	doc["createdAt"] = now
	doc["updatedAt"] = now

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, doc)
	observeQuery(ctx, "create", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create itinerary: %w", err)
	}

	return &types.StoredDocument{
		ID:        oid.Hex(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
		Body:      body,
	}, nil
}

func (r *MongoRepository) List(ctx context.Context, ownerID string) ([]*types.StoredDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		observeQuery(ctx, "list", start, err)
		r.logger.ErrorContext(ctx, "Failed to query itineraries", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]*types.StoredDocument, 0)
	for cursor.Next(ctx) {
		doc, err := decodeMongoDocument(cursor.Current)
		if err != nil {
			observeQuery(ctx, "list", start, err)
			r.logger.ErrorContext(ctx, "Failed to decode itinerary", slog.Any("error", err))
			return nil, err
		}
		docs = append(docs, doc)
	}
	err = cursor.Err()
	observeQuery(ctx, "list", start, err)
	if err != nil {
		return nil, fmt.Errorf("error iterating itineraries: %w", err)
	}
	return docs, nil
}

func (r *MongoRepository) Get(ctx context.Context, ownerID, id string) (*types.StoredDocument, error) {
	start := time.Now()
	raw, err := r.collection.FindOne(ctx, ownedFilter(ownerID, id)).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		observeQuery(ctx, "get", start, nil)
		return nil, types.ErrNotFound
	}
	observeQuery(ctx, "get", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to get itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return decodeMongoDocument(raw)
}

func (r *MongoRepository) Update(ctx context.Context, ownerID, id string, body types.Document) (*types.StoredDocument, error) {
	current, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := r.now()
	doc := bodyToBSON(body)
	doc["ownerId"] = ownerID
	doc["createdAt"] = current.CreatedAt
	doc["updatedAt"] = now

	start := time.Now()
	res, err := r.collection.ReplaceOne(ctx, ownedFilter(ownerID, id), doc)
	observeQuery(ctx, "update", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to replace itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update itinerary: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, types.ErrNotFound
	}

	return &types.StoredDocument{
		ID:        current.ID,
		OwnerID:   ownerID,
		CreatedAt: current.CreatedAt,
		UpdatedAt: now,
		Body:      body,
	}, nil
}

func (r *MongoRepository) Delete(ctx context.Context, ownerID, id string) error {
	start := time.Now()
	res, err := r.collection.DeleteOne(ctx, ownedFilter(ownerID, id))
	observeQuery(ctx, "delete", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if res.DeletedCount == 0 {
		return types.ErrNotFound
	}
	return nil
}

func ownedFilter(ownerID, id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid, "ownerId": ownerID}
	}
	return bson.M{"_id": id, "ownerId": ownerID}
}

func bodyToBSON(body types.Document) bson.M {
	doc := make(bson.M, len(body)+4)
	for k, v := range body {
		doc[k] = v
	}
	for _, k := range storeKeys {
		delete(doc, k)
	}
	return doc
}

func decodeMongoDocument(raw bson.Raw) (*types.StoredDocument, error) {
	var doc types.StoredDocument

	idVal := raw.Lookup("_id")
	if oid, ok := idVal.ObjectIDOK(); ok {
		doc.ID = oid.Hex()
	} else if s, ok := idVal.StringValueOK(); ok {
		doc.ID = s
	}
	doc.OwnerID, _ = raw.Lookup("ownerId").StringValueOK()
	if t, ok := raw.Lookup("createdAt").TimeOK(); ok {
		doc.CreatedAt = t.UTC()
	}
	if t, ok := raw.Lookup("updatedAt").TimeOK(); ok {
		doc.UpdatedAt = t.UTC()
	}

	extJSON, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert itinerary document: %w", err)
	}
	if err := json.Unmarshal(extJSON, &doc.Body); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary body: %w", err)
	}
	if doc.Body == nil {
		doc.Body = types.Document{}
	}
	for _, k := range storeKeys {
		delete(doc.Body, k)
	}
	return &doc, nil
}
