package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// MongoDB is an implementation of the Database interface using MongoDB.
// Documents are ordered by their generated _id, which follows insertion order.
type MongoDB struct {
	client     *mongo.Client
	database   *mongo.Database
	collection *mongo.Collection
}

// NewMongoDB creates a new instance of the MongoDB database
func NewMongoDB(ctx context.Context, connectionURI, databaseName, collectionName string, logger *zap.Logger) (*MongoDB, error) {
	// nested schema blobs decode as maps instead of ordered documents
	clientOptions := options.Client().
		ApplyURI(connectionURI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := client.Database(databaseName)
	collection := database.Collection(collectionName)

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "published", Value: 1}},
		},
	}

	_, err = collection.Indexes().CreateMany(ctx, models)
	if err != nil {
		// Mongo will error if the index already exists, we can ignore this and continue.
		var commandError mongo.CommandError
		if errors.As(err, &commandError) && commandError.Code != 86 {
			return nil, err
		}
		logger.Info("indexes already exist, skipping", zap.String("collection", collectionName))
	}

	return &MongoDB{
		client:     client,
		database:   database,
		collection: collection,
	}, nil
}

// List retrieves integrations with optional filtering and pagination
func (db *MongoDB) List(
	ctx context.Context,
	filter *IntegrationFilter,
	cursor string,
	limit int,
) ([]*model.Integration, string, error) {
	if ctx.Err() != nil {
		return nil, "", ctx.Err()
	}

	mongoFilter := bson.M{}
	if filter != nil {
		if filter.Published != nil {
			mongoFilter["published"] = *filter.Published
		}
		if filter.Search != "" {
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
			mongoFilter["$or"] = bson.A{
				bson.M{"name": pattern},
				bson.M{"description": pattern},
			}
		}
	}

	if cursor != "" {
		var cursorDoc struct {
			OID primitive.ObjectID `bson:"_id"`
		}
		err := db.collection.FindOne(ctx, bson.M{"id": cursor}, options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&cursorDoc)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, "", ErrInvalidInput
			}
			return nil, "", err
		}
		mongoFilter["_id"] = bson.M{"$gt": cursorDoc.OID}
	}

	findOptions := options.Find().SetSort(bson.M{"_id": 1})
	if limit > 0 {
		findOptions.SetLimit(int64(limit + 1))
	}

	mongoCursor, err := db.collection.Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, "", err
	}
	defer mongoCursor.Close(ctx)

	results := []*model.Integration{}
	if err = mongoCursor.All(ctx, &results); err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if limit > 0 && len(results) > limit {
		results = results[:limit]
		nextCursor = results[limit-1].ID
	}

	return results, nextCursor, nil
}

// GetByID retrieves a single integration by its ID
func (db *MongoDB) GetByID(ctx context.Context, id string) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var integration model.Integration
	err := db.collection.FindOne(ctx, bson.M{"id": id}).Decode(&integration)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving integration: %w", err)
	}

	return &integration, nil
}

// Create inserts a new integration
func (db *MongoDB) Create(ctx context.Context, integration *model.Integration) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if integration == nil || integration.ID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := db.collection.InsertOne(ctx, integration); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("error inserting integration: %w", err)
	}

	return integration, nil
}

// Update replaces the stored document. ReplaceOne keeps _id, so the listing position is kept.
func (db *MongoDB) Update(ctx context.Context, id string, integration *model.Integration) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if integration == nil {
		return nil, ErrInvalidInput
	}

	result, err := db.collection.ReplaceOne(ctx, bson.M{"id": id}, integration)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("error updating integration: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return integration, nil
}

// Delete removes an integration
func (db *MongoDB) Delete(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	result, err := db.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting integration: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection
func (db *MongoDB) Close() error {
	return db.client.Disconnect(context.Background())
}
