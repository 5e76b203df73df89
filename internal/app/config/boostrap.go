package config

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Database
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// ReconcilerStop if set will be called during Shutdown to stop the reconciler schedule
	ReconcilerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.ReconcilerStop != nil {
		b.ReconcilerStop()
		b.Logger.Info("Successfully stopped payment reconciler")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	b.Logger.Info("Successfully closing Redis")

	if b.RabbitMQ != nil {
		err = b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		b.Logger.Info("Successfully closing RabbitMQ")
	}

	err = b.MongoDB.Client().Disconnect(ctx)
	if err != nil {
		return err
	}
	b.Logger.Info("Successfully closing MongoDB")

	_ = b.Logger.Sync()
	return nil
}
