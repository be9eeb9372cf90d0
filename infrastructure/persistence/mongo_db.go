package persistence

import (
	"context"
	"fmt"
	"time"

	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoDb is the process-wide store handle. It is created once at startup and
// passed to every repository.
type MongoDb struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewMongoDb(ctx context.Context, cfg configuration.Mongo) (*MongoDb, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI()).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetConnectTimeout(5 * time.Second)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GetLogger().WithField("database", cfg.Name).Info("MongoDB connected successfully")
	return &MongoDb{Client: client, DB: client.Database(cfg.Name)}, nil
}

func (m *MongoDb) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

func (m *MongoDb) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

func (m *MongoDb) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to disconnect MongoDB client")
		return err
	}
	logger.GetLogger().Info("MongoDB disconnected")
	return nil
}
