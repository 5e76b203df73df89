package database

import (
	"clinic-service/internal/app/config"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

func NewMongoDB(ctx context.Context, log *zap.Logger, driverConfig *config.DriverConfig, dbName string) (*mongo.Database, error) {
	connectionString := driverConfig.MongoDB.URI
	if connectionString == "" {
		connectionString = buildMongoURI(driverConfig.MongoDB)
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	dbOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo database: %w", err)
	}
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		return nil, fmt.Errorf("ping mongo database: %w", err)
	}
	log.Info("Successfully connected to mongo database", zap.String("db_name", dbName))
	return client.Database(dbName), nil
}

func buildMongoURI(cfg config.MongoDB) string {
	if cfg.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
}
