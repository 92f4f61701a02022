package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// InitDatabase establishes a pooled connection to MongoDB using configuration
// values and ensures the indexes the stores rely on. The client is shared by
// all handlers; per-request work only borrows connections from its pool.
func InitDatabase() *mongo.Database {
	if db != nil {
		return db
	}

	cfg := Get()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoDBURL).
		SetMaxPoolSize(20).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(10 * time.Minute)

	var err error
	client, err = mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Ping at boot to surface network/auth problems before the first query.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	db = client.Database(cfg.DatabaseName)

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	return db
}

// CloseDatabase disconnects the shared client. Intended for shutdown paths.
func CloseDatabase(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "verification_token", Value: 1}},
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	fileIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "uploaded_by", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			// Sparse: only files holding a current access token participate,
			// so the token uniquely maps to exactly one file at a time.
			Keys:    bson.D{{Key: "access_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	_, err := db.Collection("files").Indexes().CreateMany(ctx, fileIndexes)
	return err
}
